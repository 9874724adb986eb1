// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/clean-karachi/cliparse"
	"github.com/danielhkuo/clean-karachi/dashboard"
	"github.com/danielhkuo/clean-karachi/handlers"
	"github.com/danielhkuo/clean-karachi/metrics"
	"github.com/danielhkuo/clean-karachi/middleware"
)

func NewRouter(dash *dashboard.Dashboard, db *sql.DB, collector *metrics.Collector, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dashHandler := handlers.NewDashboardHandler(dash, cfg)
	activityHandler := handlers.NewActivityHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus exposition
	mux.Handle("GET /metrics", collector.Handler())

	// Dashboard state
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(dashHandler.GetSnapshot))
	mux.HandleFunc("POST /dashboard/refresh", middleware.WithLogging(dashHandler.Refresh))
	mux.HandleFunc("PUT /dashboard/draft", middleware.WithLogging(dashHandler.UpdateDraft))
	mux.HandleFunc("GET /dashboard/areas", middleware.WithLogging(dashHandler.GetAreas))

	// Complaint actions (refused in demo mode)
	mux.HandleFunc("POST /dashboard/complaints", middleware.WithLogging(dashHandler.CreateComplaint))
	mux.HandleFunc("POST /dashboard/complaints/{id}/vote", middleware.WithLogging(dashHandler.Vote))
	mux.HandleFunc("POST /dashboard/seed", middleware.WithLogging(dashHandler.Seed))

	// Operation journal
	mux.HandleFunc("GET /dashboard/activity", middleware.WithLogging(activityHandler.GetActivity))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("clean-karachi dashboard v1"))
	})

	return mux
}
