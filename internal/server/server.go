// Package server exposes the pipeline over HTTP: a trigger endpoint that
// accepts the invocation payload, a read API for persisted summaries, and the
// health/metrics endpoints.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deusflow/newsflow/internal/logger"
	"github.com/deusflow/newsflow/internal/metrics"
	"github.com/deusflow/newsflow/internal/news"
	"github.com/deusflow/newsflow/internal/pipeline"
	"github.com/deusflow/newsflow/internal/report"
	"github.com/deusflow/newsflow/internal/storage"
)

type Server struct {
	Pipeline *pipeline.Pipeline
	Writer   report.Writer
	Store    *storage.Store
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/news/run", s.handleRun)
	r.Get("/api/news/{timeframe}", s.handleSummary)
	r.Get("/api/runs", s.handleRuns)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)

	return r
}

// handleRun triggers one pipeline run. The body is either the JSON
// invocation payload or a legacy bare timeframe string; the category can also
// ride in as a query parameter.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	req := news.ParseRequest(string(body), time.Now())
	if q := r.URL.Query().Get("category"); q != "" && req.Category == "" {
		req.Category = q
	}

	res, err := s.Pipeline.Run(r.Context(), req)
	if err != nil {
		// Surfaced as a readable message; the Recoverer above means nothing
		// in this handler can crash the process either.
		logger.Error("pipeline run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleSummary returns the persisted document for a timeframe, parsed back
// into its sections.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	tf, err := news.ParseTimeframe(chi.URLParam(r, "timeframe"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	heading, doc, err := s.Writer.Read(tf)
	if err != nil {
		writeError(w, http.StatusNotFound, "no summary for timeframe "+string(tf))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"timeframe": tf,
		"heading":   heading,
		"sections":  doc.Sections,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeJSON(w, http.StatusOK, []storage.Run{})
		return
	}
	runs, err := s.Store.RecentRuns(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
