package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairlance/clausecheck/internal/config"
	"github.com/fairlance/clausecheck/internal/middleware"
	"github.com/fairlance/clausecheck/pkg/mcp"
)

var handler *mcp.Handler

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	handler = mcp.NewHandler(cfg)
	defer handler.Close()

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.AuthMiddleware(cfg))

	// MCP endpoint
	router.PathPrefix("/mcp").Handler(handler)

	// Health endpoint
	router.HandleFunc("/health", healthHandler).Methods("GET")

	// Analysis endpoints
	router.HandleFunc("/api/analyze", analyzeHandler).Methods("POST")
	router.HandleFunc("/api/analysis", getAnalysisHandler).Methods("GET")
	router.HandleFunc("/api/analysis", clearAnalysisHandler).Methods("DELETE")

	// Negotiation endpoint
	router.HandleFunc("/api/negotiate", negotiateHandler).Methods("POST")

	// Audit endpoint
	router.HandleFunc("/api/audit", auditHandler).Methods("GET")

	// Configuration API
	router.PathPrefix("/configure").Handler(config.NewConfigAPI(cfg).Router())

	// Start server
	srv := &http.Server{
		Addr:         cfg.App.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting ClauseCheck server on %s", cfg.App.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// sessionID keys the result cache per caller.
func sessionID(r *http.Request) string {
	if s := r.Header.Get("X-Session-ID"); s != "" {
		return s
	}
	return "default"
}

func analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req mcp.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Session = sessionID(r)

	input, _ := json.Marshal(req)
	result, err := handler.Analyze(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

func getAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	input, _ := json.Marshal(mcp.SessionRequest{Session: sessionID(r)})
	result, err := handler.Result(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

func clearAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	input, _ := json.Marshal(mcp.SessionRequest{Session: sessionID(r)})
	result, err := handler.Clear(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

func negotiateHandler(w http.ResponseWriter, r *http.Request) {
	var req mcp.NegotiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, _ := json.Marshal(req)
	result, err := handler.Negotiate(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(result)
}

func auditHandler(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := handler.AuditLogs(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"entries": entries, "count": len(entries)})
}
