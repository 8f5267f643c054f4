package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kimjiho/fxbrief/internal/config"
	"github.com/kimjiho/fxbrief/internal/core"
	"github.com/kimjiho/fxbrief/internal/digest"
	"github.com/kimjiho/fxbrief/internal/report"
)

// Services groups all service dependencies for REST handlers
type Services struct {
	Core   *core.BriefingCore
	Digest *digest.Worker
}

// CreateRESTHandler creates REST API endpoints
func CreateRESTHandler(services Services, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/analyze":
			handleAnalyze(w, r, services.Core)
		case "/api/snapshot":
			handleSnapshot(w, r, services.Core)
		case "/api/cache/invalidate":
			handleCacheInvalidate(w, r, services.Core, cfg)
		case "/api/digest/send":
			handleDigestSend(w, r, services.Digest, cfg)
		case "/api/health":
			handleHealth(w, r)
		default:
			http.NotFound(w, r)
		}
	}
}

type timing struct {
	TotalMS int64 `json:"total_ms"`
}

type analyzeResponse struct {
	Success bool                   `json:"success"`
	Data    *report.AnalysisReport `json:"data"`
	Cached  bool                   `json:"cached"`
	Timing  timing                 `json:"timing"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func handleAnalyze(w http.ResponseWriter, r *http.Request, briefing *core.BriefingCore) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	refresh := r.URL.Query().Get("refresh") == "true"
	start := time.Now()

	result, cached, err := briefing.GetReport(r.Context(), refresh)
	if err != nil {
		log.Printf("[REST] Analyze failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success: true,
		Data:    result,
		Cached:  cached,
		Timing:  timing{TotalMS: time.Since(start).Milliseconds()},
	})
}

func handleSnapshot(w http.ResponseWriter, r *http.Request, briefing *core.BriefingCore) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snapshot, cached := briefing.CurrentSnapshot(r.Context())

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    snapshot,
		"cached":  cached,
	})
}

func handleCacheInvalidate(w http.ResponseWriter, r *http.Request, briefing *core.BriefingCore, cfg config.Config) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !authorized(r, cfg) {
		writeError(w, http.StatusUnauthorized, "unauthorized - invalid or missing bearer token")
		return
	}

	tag := r.URL.Query().Get("tag")
	cleared := briefing.Invalidate(tag)
	log.Printf("[REST] Cache invalidated (tag=%q): %v", tag, cleared)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"clearedTags": cleared,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

func handleDigestSend(w http.ResponseWriter, r *http.Request, worker *digest.Worker, cfg config.Config) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !authorized(r, cfg) {
		writeError(w, http.StatusUnauthorized, "unauthorized - invalid or missing bearer token")
		return
	}
	if worker == nil {
		writeError(w, http.StatusServiceUnavailable, "digest is not configured")
		return
	}

	log.Println("[REST] Manually triggering digest job...")
	go func() {
		if err := worker.SendDigest(); err != nil {
			log.Printf("[REST] Manual digest failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success": true,
		"message": "digest job triggered",
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// authorized checks the bearer secret on admin endpoints. The check is only
// enforced in production mode.
func authorized(r *http.Request, cfg config.Config) bool {
	if !cfg.Production() {
		return true
	}
	if cfg.AdminToken == "" {
		return false
	}

	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	return token != header && token == cfg.AdminToken
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[REST] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}
