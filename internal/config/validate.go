package config

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"
	"time"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.App.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}

	// Validate address format and port
	if _, err := net.ResolveTCPAddr("tcp", c.App.Server.Addr); err != nil {
		return fmt.Errorf("invalid server address: %v", err)
	}

	// Validate auth configuration
	if c.App.Auth.Token == "" {
		return errors.New("auth token cannot be empty")
	}

	// Validate LLM configuration
	if c.App.LLM.Enabled && c.App.LLM.Endpoint == "" {
		return errors.New("llm endpoint cannot be empty when llm is enabled")
	}

	// Validate analysis heuristics
	if c.App.Analysis.KeywordBonus < 0 || c.App.Analysis.KeywordBonus > 50 {
		return errors.New("analysis keyword_bonus must be in [0,50]")
	}
	if c.App.Analysis.CriticalThreshold < 1 || c.App.Analysis.CriticalThreshold > 100 {
		return errors.New("analysis critical_threshold must be in [1,100]")
	}
	if c.App.Analysis.CriticalFloor < 0 || c.App.Analysis.CriticalFloor > 100 {
		return errors.New("analysis critical_floor must be in [0,100]")
	}

	// Validate cache configuration
	if c.App.Cache.Path == "" {
		return errors.New("cache path cannot be empty")
	}
	if c.App.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.App.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache ttl: %v", err)
		}
	}

	// Validate archive configuration
	if c.App.Archive.Enabled {
		if c.App.Archive.Endpoint == "" {
			return errors.New("archive endpoint cannot be empty when archive is enabled")
		}
		if c.App.Archive.AccessKey == "" {
			return errors.New("archive access key cannot be empty when archive is enabled")
		}
		if c.App.Archive.SecretKey == "" {
			return errors.New("archive secret key cannot be empty when archive is enabled")
		}
		if !isValidBucketName(c.App.Archive.Bucket) {
			return fmt.Errorf("invalid archive bucket name: %s", c.App.Archive.Bucket)
		}
	}

	return nil
}

// isValidBucketName checks if a bucket name is valid according to MinIO/S3 rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	if !regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`).MatchString(name) {
		return false
	}
	return true
}
