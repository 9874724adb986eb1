// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/clean-karachi/dashboard"
	"github.com/danielhkuo/clean-karachi/models"
	"github.com/danielhkuo/clean-karachi/testutil"
)

// TestFullDashboardWorkflow tests the complete end-to-end workflow:
// 1. Initial refresh against a live backend
// 2. Submit a complaint
// 3. Vote on it
// 4. Backend goes away, refresh degrades to demo data
// 5. Mutations are refused without reaching the backend
// 6. Backend returns, refresh recovers
// 7. Verify the activity journal
func TestFullDashboardWorkflow(t *testing.T) {
	env := setupTestEnv(t)

	// Step 1: Initial refresh
	w := httptest.NewRecorder()
	env.handler.Refresh(w, testutil.MakeRequest("POST", "/dashboard/refresh", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var snap models.DashboardSnapshot
	testutil.AssertJSON(t, w, &snap)
	if snap.Connectivity != models.ConnectivityLive || len(snap.Complaints) != 0 {
		t.Fatalf("Step 1 - Expected live and empty, got %q with %d complaints", snap.Connectivity, len(snap.Complaints))
	}
	if snap.Stats.CleanlinessScore != 82 {
		t.Errorf("Step 1 - Expected empty cleanliness score 82, got %d", snap.Stats.CleanlinessScore)
	}
	t.Logf("Step 1 - Live, generation %d", snap.ComplaintsGeneration)

	// Step 2: Submit a complaint
	draft := models.ComplaintDraft{Title: "Garbage in Lyari", Description: "Not collected for a week", Lat: "24.8722", Lng: "66.9950", Address: "Lyari"}
	w = httptest.NewRecorder()
	env.handler.CreateComplaint(w, testutil.MakeRequest("POST", "/dashboard/complaints", draft, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	complaints, _ := env.dash.Complaints()
	if len(complaints) != 1 {
		t.Fatalf("Step 2 - Expected 1 complaint after create, got %d", len(complaints))
	}
	complaintID := strconv.FormatInt(complaints[0].ID, 10)
	if impact := env.dash.Impact(); impact == nil || impact.ActiveUsers != 4501 {
		t.Errorf("Step 2 - Expected impact reloaded after create, got %+v", impact)
	}
	t.Logf("Step 2 - Created complaint %s", complaintID)

	// Step 3: Vote on it
	w = httptest.NewRecorder()
	env.handler.Vote(w, voteRequest(complaintID, models.VoteUrgent, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	complaints, _ = env.dash.Complaints()
	if complaints[0].VotesDown != 1 {
		t.Errorf("Step 3 - Expected votes_down=1 after reload, got %d", complaints[0].VotesDown)
	}

	// Step 4: Backend goes away
	env.backend.SetDown(true)
	w = httptest.NewRecorder()
	env.handler.Refresh(w, testutil.MakeRequest("POST", "/dashboard/refresh", nil, nil))
	testutil.AssertJSON(t, w, &snap)
	if !snap.DemoMode || snap.ComplaintsSource != models.SourceMock {
		t.Fatalf("Step 4 - Expected demo mode with mock data, got %+v", snap)
	}
	if snap.Display.IssuesResolved != "15,000" {
		t.Errorf("Step 4 - Expected mock impact display, got '%s'", snap.Display.IssuesResolved)
	}

	// Step 5: Mutations refused locally
	hitsBefore := env.backend.Hits("POST /complaints") + env.backend.Hits("POST /seed/example") + env.backend.Hits("POST /complaints/1/vote")

	w = httptest.NewRecorder()
	env.handler.Vote(w, voteRequest("1", models.VoteSupport, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	env.handler.CreateComplaint(w, testutil.MakeRequest("POST", "/dashboard/complaints", draft, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	env.handler.Seed(w, testutil.MakeRequest("POST", "/dashboard/seed", nil, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var resp models.ActionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Advisory != dashboard.AdvisorySeedDisabled {
		t.Errorf("Step 5 - Expected seed disabled advisory, got '%s'", resp.Advisory)
	}

	hitsAfter := env.backend.Hits("POST /complaints") + env.backend.Hits("POST /seed/example") + env.backend.Hits("POST /complaints/1/vote")
	if hitsAfter != hitsBefore {
		t.Errorf("Step 5 - Expected no mutating backend calls in demo mode, got %d", hitsAfter-hitsBefore)
	}

	// Step 6: Backend returns
	env.backend.SetDown(false)
	w = httptest.NewRecorder()
	env.handler.Refresh(w, testutil.MakeRequest("POST", "/dashboard/refresh", nil, nil))
	snap = models.DashboardSnapshot{}
	testutil.AssertJSON(t, w, &snap)
	if snap.Connectivity != models.ConnectivityLive || snap.Advisory != "" {
		t.Errorf("Step 6 - Expected live with no advisory, got %q '%s'", snap.Connectivity, snap.Advisory)
	}
	if len(snap.Complaints) != 1 || snap.Complaints[0].Title != "Garbage in Lyari" {
		t.Errorf("Step 6 - Expected backend data restored, got %+v", snap.Complaints)
	}

	// Step 7: Activity journal
	w = httptest.NewRecorder()
	env.activity.GetActivity(w, testutil.MakeRequest("GET", "/dashboard/activity?limit=100", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var activity models.ActivityResponse
	testutil.AssertJSON(t, w, &activity)

	counts := map[string]int{}
	for _, e := range activity.Entries {
		counts[e.Action+"/"+e.Outcome]++
	}
	expected := map[string]int{
		"create_complaint/ok":       1,
		"vote/ok":                   1,
		"load_complaints/fallback":  1,
		"load_impact/fallback":      1,
		"vote/rejected":             1,
		"create_complaint/rejected": 1,
		"seed/rejected":             1,
	}
	for key, want := range expected {
		if counts[key] != want {
			t.Errorf("Step 7 - Expected %d %s entries, got %d", want, key, counts[key])
		}
	}
}
