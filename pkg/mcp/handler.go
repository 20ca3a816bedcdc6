package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fairlance/clausecheck/internal/analysis"
	"github.com/fairlance/clausecheck/internal/archive"
	"github.com/fairlance/clausecheck/internal/audit"
	"github.com/fairlance/clausecheck/internal/cache"
	"github.com/fairlance/clausecheck/internal/config"
	"github.com/fairlance/clausecheck/internal/llm"
	"github.com/fairlance/clausecheck/internal/negotiate"
)

// Handler owns the analysis pipeline, the result cache and the negotiation
// entry point, and exposes them both to the REST gateway and as MCP tools.
type Handler struct {
	config    *config.Config
	audit     *audit.Auditor
	analyzer  *analysis.Analyzer
	cache     *cache.Store
	archive   *archive.Archive
	completer negotiate.Completer
	server    *mcp.Server
}

func NewHandler(cfg *config.Config) *Handler {
	h := &Handler{
		config: cfg,
		audit:  audit.NewAuditor(cfg.App.Audit.Path),
	}

	heuristics := heuristicsFromConfig(cfg)

	var caller analysis.LLMCaller
	if cfg.App.LLM.Enabled {
		client := llm.NewClient(cfg.App.LLM.Endpoint, cfg.App.LLM.APIKey, cfg.App.LLM.Model)
		caller = client
		h.completer = client
	}
	h.analyzer = analysis.NewAnalyzer(analysis.NewRuleSet(), heuristics, caller)

	store, err := cache.NewStore(cfg.App.Cache.Path, cfg.CacheTTL())
	if err != nil {
		log.Printf("Warning: failed to open result cache at %s: %v", cfg.App.Cache.Path, err)
	} else {
		h.cache = store
	}

	if cfg.App.Archive.Enabled {
		arch, err := archive.New(archive.Config{
			Endpoint:  cfg.App.Archive.Endpoint,
			AccessKey: cfg.App.Archive.AccessKey,
			SecretKey: cfg.App.Archive.SecretKey,
			Bucket:    cfg.App.Archive.Bucket,
			UseSSL:    cfg.App.Archive.UseSSL,
		})
		if err != nil {
			log.Printf("Warning: failed to initialize archive: %v", err)
		} else {
			h.archive = arch
		}
	}

	h.initMCPServer()
	return h
}

func heuristicsFromConfig(cfg *config.Config) analysis.Heuristics {
	h := analysis.DefaultHeuristics()
	a := cfg.App.Analysis
	if a.KeywordBonus > 0 {
		h.KeywordBonus = a.KeywordBonus
	}
	if len(a.BonusKeywords) > 0 {
		h.BonusKeywords = a.BonusKeywords
	}
	if a.CriticalThreshold > 0 {
		h.CriticalThreshold = a.CriticalThreshold
	}
	if a.CriticalFloor > 0 {
		h.CriticalFloor = a.CriticalFloor
	}
	return h
}

type AnalyzeRequest struct {
	Session          string `json:"session"`
	Text             string `json:"text"`
	Filename         string `json:"filename"`
	PageCount        int    `json:"page_count"`
	WordCount        int    `json:"word_count"`
	ExtractionMethod string `json:"extraction_method"`
}

// Analyze runs the pipeline over one document and makes the result the
// session's active result.
func (h *Handler) Analyze(ctx context.Context, input json.RawMessage) ([]byte, error) {
	var req AnalyzeRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	session := sessionOrDefault(req.Session)

	result := h.analyzer.Analyze(ctx, req.Text, analysis.DocumentMeta{
		Filename:         req.Filename,
		PageCount:        req.PageCount,
		WordCount:        req.WordCount,
		ExtractionMethod: req.ExtractionMethod,
	})

	if h.cache != nil {
		if err := h.cache.SetResult(session, result); err != nil {
			log.Printf("Failed to persist analysis result: %v", err)
		}
	}

	out, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	if h.archive != nil {
		redacted := analysis.Redact(req.Text)
		if err := h.archive.StoreAnalysis(ctx, result.ID, []byte(redacted.RedactedText), out); err != nil {
			log.Printf("Archive skipped: %v", err)
		}
	}

	// Raw text stays out of the audit trail; log shape only.
	summary, _ := json.Marshal(map[string]any{
		"session": session, "filename": req.Filename, "chars": len(req.Text),
	})
	h.audit.Log("analyze", summary, nil, nil)
	return out, nil
}

type SessionRequest struct {
	Session string `json:"session"`
}

// Result returns the session's active result, or availability=false when the
// cache is empty, expired or unreadable.
func (h *Handler) Result(ctx context.Context, input json.RawMessage) ([]byte, error) {
	var req SessionRequest
	json.Unmarshal(input, &req)
	session := sessionOrDefault(req.Session)

	if h.cache == nil {
		return json.Marshal(map[string]any{"available": false})
	}
	result := h.cache.GetResult(session)
	if result == nil {
		return json.Marshal(map[string]any{"available": false})
	}
	return json.Marshal(map[string]any{"available": true, "result": result})
}

// Clear discards the session's active result.
func (h *Handler) Clear(ctx context.Context, input json.RawMessage) ([]byte, error) {
	var req SessionRequest
	json.Unmarshal(input, &req)
	session := sessionOrDefault(req.Session)

	if h.cache != nil {
		h.cache.ClearResult(session)
	}
	h.audit.Log("clear", input, nil, nil)
	return json.Marshal(map[string]string{"status": "cleared", "session": session})
}

type NegotiateRequest struct {
	Transcript    []negotiate.Turn     `json:"transcript"`
	Difficulty    negotiate.Difficulty `json:"difficulty"`
	ViolationType string               `json:"violation_type"`
	ClauseText    string               `json:"clause_text"`
	Message       string               `json:"message"`
}

type NegotiateResponse struct {
	Reply     string `json:"reply"`
	ShouldEnd bool   `json:"should_end"`
}

// Negotiate advances a negotiation by one turn. The full transcript travels
// with each request, so no session state is held server-side.
func (h *Handler) Negotiate(ctx context.Context, input json.RawMessage) ([]byte, error) {
	var req NegotiateRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if !req.Difficulty.Valid() {
		req.Difficulty = negotiate.DifficultyMedium
	}
	if h.completer == nil {
		return nil, fmt.Errorf("negotiation requires the completion provider to be enabled")
	}

	session := negotiate.NewSession(req.Difficulty, req.ViolationType, req.ClauseText)
	session.Turns = req.Transcript

	reply, ended := session.Advance(ctx, h.completer, req.Message)
	out, err := json.Marshal(NegotiateResponse{Reply: reply, ShouldEnd: ended})
	h.audit.Log("negotiate", input, out, err)
	return out, err
}

// AuditLogs returns the most recent audit entries.
func (h *Handler) AuditLogs(limit int) ([]audit.AuditEntry, error) {
	return h.audit.GetLogs(limit)
}

func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
	h.audit.Close()
}

func sessionOrDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

func (h *Handler) initMCPServer() {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "ClauseCheck",
		Version: "1.0.0",
	}, nil)

	tools := []struct {
		name        string
		description string
		fn          func(context.Context, json.RawMessage) ([]byte, error)
	}{
		{"contract_analyze", "Analyze contract text for risky clauses", h.Analyze},
		{"contract_result", "Get the active analysis result", h.Result},
		{"contract_clear", "Discard the active analysis result", h.Clear},
		{"negotiate_turn", "Advance a clause negotiation by one turn", h.Negotiate},
	}
	for _, tool := range tools {
		fn := tool.fn
		mcp.AddTool(server, &mcp.Tool{
			Name:        tool.name,
			Description: tool.description,
		}, h.wrapTool(fn))
	}

	h.server = server
}

func (h *Handler) wrapTool(fn func(context.Context, json.RawMessage) ([]byte, error)) func(ctx context.Context, req *mcp.CallToolRequest, input any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input any) (*mcp.CallToolResult, any, error) {
		inputBytes, _ := json.Marshal(input)
		result, err := fn(ctx, inputBytes)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{
					&mcp.TextContent{Text: err.Error()},
				},
			}, nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: string(result)},
			},
		}, nil, nil
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.server == nil {
		http.Error(w, "MCP server not initialized", http.StatusInternalServerError)
		return
	}
	h.server.Run(r.Context(), &mcp.StdioTransport{})
}
