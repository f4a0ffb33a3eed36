// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radar-cac/radar/cliparse"
	"github.com/radar-cac/radar/handlers"
	"github.com/radar-cac/radar/metrics"
	"github.com/radar-cac/radar/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, verifier handlers.Verifier) *chi.Mux {
	metrics.Init()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Não encontrado")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Método não permitido")
	})

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(db, cfg, verifier)
	unitHandler := handlers.NewUnitHandler(db, cfg)
	statsHandler := handlers.NewStatsHandler(db, cfg)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Submission endpoint; the handler answers other methods itself
	r.HandleFunc("/submissions", middleware.WithLogging(submissionHandler.Submit))

	// Dashboard read path
	r.Get("/oms", middleware.WithLogging(unitHandler.List))
	r.Get("/vocabulary", unitHandler.Vocabulary)
	r.Get("/stats", middleware.WithLogging(statsHandler.Summary))
	r.Get("/stats/monthly", middleware.WithLogging(statsHandler.Monthly))
	r.Get("/submissions/recent", middleware.WithLogging(statsHandler.Recent))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("radar API v1"))
	})

	return r
}
