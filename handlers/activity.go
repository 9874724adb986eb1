// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/clean-karachi/cliparse"
	"github.com/danielhkuo/clean-karachi/db"
	"github.com/danielhkuo/clean-karachi/middleware"
	"github.com/danielhkuo/clean-karachi/models"
)

type ActivityHandler struct {
	journal *db.Journal
	cfg     cliparse.Config
}

func NewActivityHandler(database *sql.DB, cfg cliparse.Config) *ActivityHandler {
	return &ActivityHandler{journal: db.NewJournal(database), cfg: cfg}
}

// GetActivity handles GET /dashboard/activity?limit=N
// Returns the most recent journal entries, newest first.
func (h *ActivityHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	limit := db.DefaultActivityLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to read activity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActivityResponse{Entries: entries})
}
