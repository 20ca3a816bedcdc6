package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete service configuration
// The structure matches the config.yaml file and can be overridden by environment variables

type Config struct {
	App AppConfig `json:"app" mapstructure:"app"`
}

// AppConfig contains the main service configuration

type AppConfig struct {
	Server   ServerConfig   `json:"server" mapstructure:"server"`
	Auth     AuthConfig     `json:"auth" mapstructure:"auth"`
	LLM      LLMConfig      `json:"llm" mapstructure:"llm"`
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Archive  ArchiveConfig  `json:"archive" mapstructure:"archive"`
	Audit    AuditConfig    `json:"audit" mapstructure:"audit"`
}

// ServerConfig contains server-specific configuration

type ServerConfig struct {
	Addr    string `json:"addr" mapstructure:"addr"`
	Timeout string `json:"timeout" mapstructure:"timeout"`
}

// AuthConfig contains authentication configuration

type AuthConfig struct {
	Token string `json:"token" mapstructure:"token"`
}

// LLMConfig contains the completion-provider configuration used for
// negotiation and analysis enrichment

type LLMConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`
	Model    string `json:"model" mapstructure:"model"`
	APIKey   string `json:"api_key" mapstructure:"api_key"`
}

// AnalysisConfig exposes the scoring heuristics as tunables. The defaults
// are the calibrated values; override them with care since the recommendation
// tiers assume the same scale.

type AnalysisConfig struct {
	KeywordBonus      int      `json:"keyword_bonus" mapstructure:"keyword_bonus"`
	BonusKeywords     []string `json:"bonus_keywords" mapstructure:"bonus_keywords"`
	CriticalThreshold int      `json:"critical_threshold" mapstructure:"critical_threshold"`
	CriticalFloor     int      `json:"critical_floor" mapstructure:"critical_floor"`
}

// CacheConfig contains result-cache configuration

type CacheConfig struct {
	Path string `json:"path" mapstructure:"path"`
	TTL  string `json:"ttl" mapstructure:"ttl"`
}

// ArchiveConfig contains the optional S3-compatible document archive

type ArchiveConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Endpoint  string `json:"endpoint" mapstructure:"endpoint"`
	AccessKey string `json:"access_key" mapstructure:"access_key"`
	SecretKey string `json:"secret_key" mapstructure:"secret_key"`
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	UseSSL    bool   `json:"use_ssl" mapstructure:"use_ssl"`
}

// AuditConfig contains the audit-log configuration

type AuditConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env first (ignore error if not present)
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.clausecheck")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("CLAUSECHECK")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found, using defaults")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.App.Cache.Path = resolvePath(cfg.App.Cache.Path)
	cfg.App.Audit.Path = resolvePath(cfg.App.Audit.Path)
	return &cfg, nil
}

// CacheTTL parses the configured TTL, falling back to one hour.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.App.Cache.TTL)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("APP.SERVER.ADDR", ":8080")
	viper.SetDefault("APP.SERVER.TIMEOUT", "30s")

	viper.SetDefault("APP.AUTH.TOKEN", "default-secret-token")

	// LLM defaults
	viper.SetDefault("APP.LLM.ENABLED", true)
	viper.SetDefault("APP.LLM.ENDPOINT", "http://localhost:1234")
	viper.SetDefault("APP.LLM.MODEL", "local-model")

	// Analysis heuristics
	viper.SetDefault("APP.ANALYSIS.KEYWORD_BONUS", 10)
	viper.SetDefault("APP.ANALYSIS.BONUS_KEYWORDS", []string{
		"sole discretion", "unlimited", "perpetual", "irrevocable",
		"without notice", "absolute", "waive",
	})
	viper.SetDefault("APP.ANALYSIS.CRITICAL_THRESHOLD", 90)
	viper.SetDefault("APP.ANALYSIS.CRITICAL_FLOOR", 85)

	// Cache defaults
	viper.SetDefault("APP.CACHE.PATH", "~/.clausecheck/cache.db")
	viper.SetDefault("APP.CACHE.TTL", "1h")

	// Archive defaults
	viper.SetDefault("APP.ARCHIVE.ENABLED", false)
	viper.SetDefault("APP.ARCHIVE.ENDPOINT", "127.0.0.1:9000")
	viper.SetDefault("APP.ARCHIVE.BUCKET", "clausecheck-archive")
	viper.SetDefault("APP.ARCHIVE.USE_SSL", false)

	// Audit defaults
	viper.SetDefault("APP.AUDIT.PATH", "~/.clausecheck/audit.db")
}

// resolvePath resolves ~ to home directory and cleans the path
func resolvePath(p string) string {
	if p == "" {
		return p
	}
	if p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return filepath.Clean(p)
}
