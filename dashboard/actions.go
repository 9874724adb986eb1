// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/clean-karachi/models"
)

var (
	ErrDemoMode         = errors.New("action disabled in demo mode")
	ErrInvalidDraft     = errors.New("invalid complaint draft")
	ErrInvalidDirection = errors.New("invalid vote direction")
)

// Vote sends a +1 (support) or -1 (urgent) vote for a complaint.
//
// Rejected locally with ErrDemoMode while degraded. The complaint is marked
// busy while the request is in flight. On success the complaint collection
// is reloaded; the returned Result reflects that reload. On failure the
// backend's message becomes the advisory and nothing is rolled back.
func (d *Dashboard) Vote(ctx context.Context, complaintID int64, direction int, voterID string) (Result, error) {
	cid := complaintID

	d.mu.Lock()
	if d.connectivity.DemoMode() {
		d.advisory = AdvisoryVoteDisabled
		res := d.resultLocked()
		d.mu.Unlock()
		d.reject(ctx, models.ActionVote, &cid, "demo_mode", models.OutcomeRejected, AdvisoryVoteDisabled)
		return res, ErrDemoMode
	}
	if direction != models.VoteSupport && direction != models.VoteUrgent {
		d.advisory = AdvisoryInvalidVote
		res := d.resultLocked()
		d.mu.Unlock()
		d.reject(ctx, models.ActionVote, &cid, "invalid", models.OutcomeInvalid, AdvisoryInvalidVote)
		return res, ErrInvalidDirection
	}
	d.busy[complaintID]++
	d.advisory = ""
	d.mu.Unlock()

	err := d.backend.Vote(ctx, complaintID, models.VoteRequest{VoterID: voterID, Value: direction})

	d.mu.Lock()
	d.busy[complaintID]--
	if d.busy[complaintID] <= 0 {
		delete(d.busy, complaintID)
	}
	d.mu.Unlock()

	if err != nil {
		return d.fail(ctx, models.ActionVote, &cid, err), err
	}

	slog.Info("vote submitted", "complaint_id", complaintID, "value", direction)
	d.record(ctx, models.Activity{
		Action:       models.ActionVote,
		ComplaintID:  &cid,
		Outcome:      models.OutcomeOK,
		Connectivity: d.Connectivity(),
	})

	// Tallies are backend-owned: invalidate and reload
	return d.LoadComplaints(ctx), nil
}

// CreateComplaint submits the draft as a new complaint.
//
// The draft becomes the current form. While degraded, or when the title is
// blank or a coordinate does not parse, nothing is sent. On success the form
// keeps its coordinates and clears the rest, then complaints and impact
// stats are reloaded in that order. On failure the form is left as is.
func (d *Dashboard) CreateComplaint(ctx context.Context, draft models.ComplaintDraft) (Result, error) {
	d.mu.Lock()
	d.draft = draft
	if d.connectivity.DemoMode() {
		d.advisory = AdvisoryCreateDisabled
		res := d.resultLocked()
		d.mu.Unlock()
		d.reject(ctx, models.ActionCreateComplaint, nil, "demo_mode", models.OutcomeRejected, AdvisoryCreateDisabled)
		return res, ErrDemoMode
	}

	req, ok := BuildCreateRequest(draft)
	if !ok {
		d.advisory = AdvisoryInvalidDraft
		res := d.resultLocked()
		d.mu.Unlock()
		d.reject(ctx, models.ActionCreateComplaint, nil, "invalid", models.OutcomeInvalid, AdvisoryInvalidDraft)
		return res, ErrInvalidDraft
	}
	d.creating++
	d.advisory = ""
	d.mu.Unlock()

	created, err := d.backend.CreateComplaint(ctx, req)

	d.mu.Lock()
	d.creating--
	d.mu.Unlock()

	if err != nil {
		return d.fail(ctx, models.ActionCreateComplaint, nil, err), err
	}

	d.mu.Lock()
	d.draft = models.ComplaintDraft{Lat: draft.Lat, Lng: draft.Lng}
	d.mu.Unlock()

	var cid *int64
	if created.ID != 0 {
		id := created.ID
		cid = &id
	}
	slog.Info("complaint created", "complaint_id", created.ID, "title", req.Title)
	d.record(ctx, models.Activity{
		Action:       models.ActionCreateComplaint,
		ComplaintID:  cid,
		Outcome:      models.OutcomeOK,
		Connectivity: d.Connectivity(),
	})

	d.LoadComplaints(ctx)
	return d.LoadImpact(ctx), nil
}

// SeedExample asks the backend to create demo data, then reloads
// complaints. Rejected locally while degraded.
func (d *Dashboard) SeedExample(ctx context.Context) (Result, error) {
	d.mu.Lock()
	if d.connectivity.DemoMode() {
		d.advisory = AdvisorySeedDisabled
		res := d.resultLocked()
		d.mu.Unlock()
		d.reject(ctx, models.ActionSeed, nil, "demo_mode", models.OutcomeRejected, AdvisorySeedDisabled)
		return res, ErrDemoMode
	}
	d.seeding++
	d.advisory = ""
	d.mu.Unlock()

	err := d.backend.SeedExample(ctx)

	d.mu.Lock()
	d.seeding--
	d.mu.Unlock()

	if err != nil {
		return d.fail(ctx, models.ActionSeed, nil, err), err
	}

	slog.Info("example data seeded")
	d.record(ctx, models.Activity{
		Action:       models.ActionSeed,
		Outcome:      models.OutcomeOK,
		Connectivity: d.Connectivity(),
	})

	return d.LoadComplaints(ctx), nil
}

// UpdateDraft replaces the complaint form.
func (d *Dashboard) UpdateDraft(draft models.ComplaintDraft) {
	d.mu.Lock()
	d.draft = draft
	d.mu.Unlock()
}

// Draft returns the current complaint form.
func (d *Dashboard) Draft() models.ComplaintDraft {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft
}

// BuildCreateRequest trims the draft and parses its coordinates.
// ok is false when the title is blank or a coordinate is not a number.
func BuildCreateRequest(draft models.ComplaintDraft) (models.CreateComplaintRequest, bool) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return models.CreateComplaintRequest{}, false
	}
	lat, ok := parseCoordinate(draft.Lat)
	if !ok {
		return models.CreateComplaintRequest{}, false
	}
	lng, ok := parseCoordinate(draft.Lng)
	if !ok {
		return models.CreateComplaintRequest{}, false
	}
	return models.CreateComplaintRequest{
		Title:       title,
		Description: strings.TrimSpace(draft.Description),
		Lat:         lat,
		Lng:         lng,
		Address:     strings.TrimSpace(draft.Address),
	}, true
}

// parseCoordinate accepts finite decimal numbers only ("NaN" and "Inf"
// parse without error but cannot be sent as JSON).
func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// fail turns a backend error into the advisory. State is otherwise unchanged.
func (d *Dashboard) fail(ctx context.Context, action string, complaintID *int64, err error) Result {
	slog.Warn("backend action failed", "action", action, "error", err)

	d.mu.Lock()
	d.advisory = err.Error()
	res := d.resultLocked()
	d.mu.Unlock()

	d.record(ctx, models.Activity{
		Action:       action,
		ComplaintID:  complaintID,
		Outcome:      models.OutcomeFailed,
		Advisory:     res.Advisory,
		Connectivity: res.Connectivity,
	})
	return res
}

func (d *Dashboard) reject(ctx context.Context, action string, complaintID *int64, reason, outcome, advisory string) {
	if d.recorder != nil {
		d.recorder.RecordRejection(action, reason)
	}
	d.record(ctx, models.Activity{
		Action:       action,
		ComplaintID:  complaintID,
		Outcome:      outcome,
		Advisory:     advisory,
		Connectivity: d.Connectivity(),
	})
}
