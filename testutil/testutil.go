// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/clean-karachi/cliparse"
	"github.com/danielhkuo/clean-karachi/db"
	"github.com/danielhkuo/clean-karachi/models"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(database); err != nil {
		database.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3000,
		APIBase:        "http://localhost:8000",
		RequestTimeout: time.Second,
		VoterID:        "test-voter",
		DatabaseURL:    TestDBURL,
		DatabaseType:   db.TypeSQLite,
	}
}

// FakeBackend is an in-process complaints backend. It keeps complaints
// and vote tallies in memory and can be switched off to force fallbacks.
type FakeBackend struct {
	Server *httptest.Server

	mu         sync.Mutex
	down       bool
	nextID     int64
	complaints []models.Complaint
	impact     models.ImpactStats
	votes      []models.VoteRequest
	hits       map[string]int
}

// NewFakeBackend starts a backend that answers until the test ends
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		nextID: 1,
		impact: models.ImpactStats{IssuesResolved: 321, AreasCovered: 12, ActiveUsers: 4500, AvgResolutionHours: 40},
		hits:   make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /complaints", f.listComplaints)
	mux.HandleFunc("POST /complaints", f.createComplaint)
	mux.HandleFunc("POST /complaints/{id}/vote", f.vote)
	mux.HandleFunc("GET /impact", f.getImpact)
	mux.HandleFunc("POST /seed/example", f.seed)

	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.Method+" "+r.URL.Path]++
		down := f.down
		f.mu.Unlock()

		if down {
			http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Server.Close)

	return f
}

// URL returns the backend base URL
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// SetDown makes every endpoint answer 503
func (f *FakeBackend) SetDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

// AddComplaint stores a complaint, assigning an ID when it has none
func (f *FakeBackend) AddComplaint(c models.Complaint) models.Complaint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(c)
}

func (f *FakeBackend) addLocked(c models.Complaint) models.Complaint {
	if c.ID == 0 {
		c.ID = f.nextID
	}
	if c.ID >= f.nextID {
		f.nextID = c.ID + 1
	}
	if c.Status == "" {
		c.Status = models.StatusNew
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
		c.UpdatedAt = c.CreatedAt
	}
	f.complaints = append(f.complaints, c)
	return c
}

// Complaints returns a copy of the stored complaints
func (f *FakeBackend) Complaints() []models.Complaint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Complaint(nil), f.complaints...)
}

// Votes returns every vote body received
func (f *FakeBackend) Votes() []models.VoteRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.VoteRequest(nil), f.votes...)
}

// Hits returns how often "METHOD /path" was requested, down or not
func (f *FakeBackend) Hits(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[route]
}

func (f *FakeBackend) listComplaints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.Complaints())
}

func (f *FakeBackend) getImpact(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	stats := f.impact
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (f *FakeBackend) createComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		http.Error(w, "title, lat and lng are required", http.StatusUnprocessableEntity)
		return
	}

	c := models.Complaint{Title: req.Title, Lat: req.Lat, Lng: req.Lng}
	if req.Description != "" {
		c.Description = &req.Description
	}
	if req.Address != "" {
		c.Address = &req.Address
	}

	f.mu.Lock()
	created := f.addLocked(c)
	f.impact.ActiveUsers++
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (f *FakeBackend) vote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var req models.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid vote", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.complaints {
		if f.complaints[i].ID != id {
			continue
		}
		f.votes = append(f.votes, req)
		f.complaints[i].VotesTotal++
		if req.Value > 0 {
			f.complaints[i].VotesUp++
		} else {
			f.complaints[i].VotesDown++
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	http.Error(w, "Complaint not found", http.StatusNotFound)
}

func (f *FakeBackend) seed(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	for _, c := range models.MockComplaints(time.Now()) {
		c.ID = 0
		f.addLocked(c)
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
