// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/clean-karachi/auth"
	"github.com/danielhkuo/clean-karachi/cliparse"
	"github.com/danielhkuo/clean-karachi/dashboard"
	"github.com/danielhkuo/clean-karachi/middleware"
	"github.com/danielhkuo/clean-karachi/models"
)

type DashboardHandler struct {
	dash *dashboard.Dashboard
	cfg  cliparse.Config
}

func NewDashboardHandler(dash *dashboard.Dashboard, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{dash: dash, cfg: cfg}
}

// GetSnapshot handles GET /dashboard
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.dash.Snapshot())
}

// Refresh handles POST /dashboard/refresh
// Reloads complaints and impact stats and returns the new snapshot. A
// degraded result is still a 200: the snapshot says so.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	res := h.dash.Refresh(detach(r))

	slog.Info("dashboard refreshed", "connectivity", res.Connectivity)
	middleware.JSONResponse(w, http.StatusOK, h.dash.Snapshot())
}

// UpdateDraft handles PUT /dashboard/draft
func (h *DashboardHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var draft models.ComplaintDraft
	if err := middleware.ParseJSONBody(r, &draft); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.dash.UpdateDraft(draft)
	middleware.JSONResponse(w, http.StatusOK, h.dash.Draft())
}

// CreateComplaint handles POST /dashboard/complaints
// The body is the raw form; validation happens in the dashboard so the
// form is kept even when rejected.
func (h *DashboardHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var draft models.ComplaintDraft
	if err := middleware.ParseJSONBody(r, &draft); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.dash.CreateComplaint(detach(r), draft)
	if err != nil {
		writeActionError(w, res, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, actionResponse(res))
}

// Vote handles POST /dashboard/complaints/{id}/vote
// Voter identity comes from X-Voter-ID, else the configured default.
func (h *DashboardHandler) Vote(w http.ResponseWriter, r *http.Request) {
	complaintID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || complaintID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "complaint id must be a positive integer")
		return
	}

	voterID, err := auth.ResolveVoterID(r, h.cfg.VoterID)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid "+auth.VoterHeader)
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.dash.Vote(detach(r), complaintID, req.Value, voterID)
	if err != nil {
		writeActionError(w, res, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, actionResponse(res))
}

// Seed handles POST /dashboard/seed
func (h *DashboardHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.dash.SeedExample(detach(r))
	if err != nil {
		writeActionError(w, res, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, actionResponse(res))
}

// GetAreas handles GET /dashboard/areas
func (h *DashboardHandler) GetAreas(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.dash.Areas())
}

// detach keeps request values but drops cancellation: the dashboard is
// shared, so a client hang-up must not turn into a fallback for everyone.
// Backend calls are still bounded by the client timeout.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func actionResponse(res dashboard.Result) models.ActionResponse {
	return models.ActionResponse{
		OK:           true,
		Advisory:     res.Advisory,
		Connectivity: res.Connectivity,
	}
}

// writeActionError maps dashboard errors to status codes.
// Demo mode is 409, local validation 400, anything from the backend 502.
func writeActionError(w http.ResponseWriter, res dashboard.Result, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, dashboard.ErrDemoMode):
		status = http.StatusConflict
	case errors.Is(err, dashboard.ErrInvalidDraft), errors.Is(err, dashboard.ErrInvalidDirection):
		status = http.StatusBadRequest
	}

	middleware.JSONResponse(w, status, models.ActionResponse{
		OK:           false,
		Advisory:     res.Advisory,
		Connectivity: res.Connectivity,
	})
}
