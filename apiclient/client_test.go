// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/clean-karachi/models"
)

type observed struct {
	endpoint string
	status   int
	err      error
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []observed
}

func (o *recordingObserver) ObserveRequest(endpoint string, status int, err error, elapsed time.Duration) {
	o.mu.Lock()
	o.calls = append(o.calls, observed{endpoint, status, err})
	o.mu.Unlock()
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", opts...)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Error("NewClient(\"\") should fail")
	}

	c, err := NewClient("http://localhost:8000/", WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", c.BaseURL())
	}
	if c.Timeout() != 2*time.Second {
		t.Errorf("Timeout() = %v, want 2s", c.Timeout())
	}

	c, _ = NewClient("http://localhost:8000")
	if c.Timeout() != DefaultTimeout {
		t.Errorf("default Timeout() = %v, want %v", c.Timeout(), DefaultTimeout)
	}
}

func TestListComplaints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/complaints" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Cache-Control"); got != "no-store" {
			t.Errorf("Cache-Control = %q, want no-store", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q, want application/json", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": 7, "title": "Overflowing bin", "lat": 24.86, "lng": 67.0, "status": "new",
			 "area_code_na": "NA-247", "created_at": "2025-03-14T10:00:00Z", "updated_at": "2025-03-14T10:00:00Z",
			 "mna": {"id": 1, "role": "MNA", "code": "NA-247", "name": "Rep"}, "votes_up": 3},
			{"id": 8, "title": "Sewage", "lat": 24.9, "lng": 67.1, "status": "resolved",
			 "created_at": "2025-03-13T10:00:00Z", "updated_at": "2025-03-14T10:00:00Z", "resolved_at": "2025-03-14T09:00:00Z"}
		]`)
	})

	got, err := c.ListComplaints(context.Background())
	if err != nil {
		t.Fatalf("ListComplaints() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d complaints, want 2", len(got))
	}
	if got[0].ID != 7 || got[0].Status != models.StatusNew || *got[0].AreaCodeNA != "NA-247" {
		t.Errorf("complaint[0] = %+v", got[0])
	}
	if got[0].MNA == nil || got[0].MNA.Role != models.RoleMNA || got[0].VotesUp != 3 {
		t.Errorf("summary fields not decoded: %+v", got[0])
	}
	if got[1].ResolvedAt == nil || got[1].Description != nil {
		t.Errorf("optional fields = resolved_at %v description %v", got[1].ResolvedAt, got[1].Description)
	}
}

func TestListComplaintsNullIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	})

	got, err := c.ListComplaints(context.Background())
	if err != nil {
		t.Fatalf("ListComplaints() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ListComplaints() = %#v, want empty non-nil slice", got)
	}
}

func TestGetImpact(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/impact" {
			t.Errorf("path = %s, want /impact", r.URL.Path)
		}
		io.WriteString(w, `{"issues_resolved": 120, "areas_covered": 9, "active_users": 450, "avg_resolution_hours": 31.5}`)
	})

	got, err := c.GetImpact(context.Background())
	if err != nil {
		t.Fatalf("GetImpact() error = %v", err)
	}
	want := models.ImpactStats{IssuesResolved: 120, AreasCovered: 9, ActiveUsers: 450, AvgResolutionHours: 31.5}
	if got != want {
		t.Errorf("GetImpact() = %+v, want %+v", got, want)
	}
}

func TestCreateComplaint(t *testing.T) {
	tests := []struct {
		name     string
		req      models.CreateComplaintRequest
		wantKeys []string
		noKeys   []string
	}{
		{
			name:     "all fields",
			req:      models.CreateComplaintRequest{Title: "Garbage", Description: "pile", Lat: 24.8, Lng: 67.0, Address: "DHA"},
			wantKeys: []string{"title", "description", "lat", "lng", "address"},
		},
		{
			name:     "empty optionals omitted",
			req:      models.CreateComplaintRequest{Title: "Garbage", Lat: 0, Lng: 67.0},
			wantKeys: []string{"title", "lat", "lng"},
			noKeys:   []string{"description", "address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/complaints" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if got := r.Header.Get("Content-Type"); got != "application/json" {
					t.Errorf("Content-Type = %q", got)
				}

				var body map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("bad request body: %v", err)
				}
				for _, k := range tt.wantKeys {
					if _, ok := body[k]; !ok {
						t.Errorf("body missing %q: %v", k, body)
					}
				}
				for _, k := range tt.noKeys {
					if _, ok := body[k]; ok {
						t.Errorf("body has %q, want omitted", k)
					}
				}

				w.WriteHeader(http.StatusCreated)
				io.WriteString(w, `{"id": 42, "title": "Garbage", "lat": 24.8, "lng": 67.0, "status": "new"}`)
			})

			got, err := c.CreateComplaint(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("CreateComplaint() error = %v", err)
			}
			if got.ID != 42 {
				t.Errorf("ID = %d, want 42", got.ID)
			}
		})
	}
}

func TestVoteAndSeed(t *testing.T) {
	var gotPaths []string
	var gotVote models.VoteRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/vote") {
			json.NewDecoder(r.Body).Decode(&gotVote)
		}
		io.WriteString(w, `{"ok": true}`)
	})

	if err := c.Vote(context.Background(), 17, models.VoteRequest{VoterID: "web-demo-user", Value: -1}); err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if err := c.SeedExample(context.Background()); err != nil {
		t.Fatalf("SeedExample() error = %v", err)
	}

	want := []string{"POST /complaints/17/vote", "POST /seed/example"}
	if len(gotPaths) != 2 || gotPaths[0] != want[0] || gotPaths[1] != want[1] {
		t.Errorf("requests = %v, want %v", gotPaths, want)
	}
	if gotVote != (models.VoteRequest{VoterID: "web-demo-user", Value: -1}) {
		t.Errorf("vote body = %+v", gotVote)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		call    func(c *Client) error
		wantMsg string
	}{
		{
			name:   "vote with body",
			status: http.StatusNotFound,
			body:   "Complaint not found\n",
			call: func(c *Client) error {
				return c.Vote(context.Background(), 9, models.VoteRequest{VoterID: "x", Value: 1})
			},
			wantMsg: "Vote failed (404): Complaint not found",
		},
		{
			name:   "create with JSON body",
			status: http.StatusUnprocessableEntity,
			body:   `{"detail":"invalid"}`,
			call: func(c *Client) error {
				_, err := c.CreateComplaint(context.Background(), models.CreateComplaintRequest{Title: "x"})
				return err
			},
			wantMsg: `Create failed (422): {"detail":"invalid"}`,
		},
		{
			name:   "seed without body",
			status: http.StatusServiceUnavailable,
			call: func(c *Client) error {
				return c.SeedExample(context.Background())
			},
			wantMsg: "Seed failed (503)",
		},
		{
			name:   "list server error",
			status: http.StatusInternalServerError,
			body:   "db down",
			call: func(c *Client) error {
				_, err := c.ListComplaints(context.Background())
				return err
			},
			wantMsg: "Load complaints failed (500): db down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := tt.call(c)

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if statusErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.status)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestErrorBodyTruncated(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, strings.Repeat("x", 10*maxErrorBody))
	})

	err := c.SeedExample(context.Background())

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if len(statusErr.Body) != maxErrorBody {
		t.Errorf("len(Body) = %d, want %d", len(statusErr.Body), maxErrorBody)
	}
}

func TestInvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	if _, err := c.ListComplaints(context.Background()); err == nil {
		t.Error("ListComplaints() error = nil for HTML body")
	}
	if _, err := c.GetImpact(context.Background()); err == nil {
		t.Error("GetImpact() error = nil for HTML body")
	}
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	start := time.Now()
	_, err := c.ListComplaints(context.Background())
	if err == nil {
		t.Fatal("ListComplaints() error = nil, want timeout")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("call took %v, deadline not applied", elapsed)
	}
}

func TestCallerCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.GetImpact(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := NewClient(url)
	_, err := c.ListComplaints(context.Background())
	if err == nil {
		t.Fatal("ListComplaints() error = nil against a closed server")
	}
	if !strings.HasPrefix(err.Error(), "Load complaints failed: ") {
		t.Errorf("error = %q, want op prefix", err.Error())
	}
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/impact" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		io.WriteString(w, "[]")
	}, WithObserver(obs), WithUserAgent("clean-karachi-test"))

	c.ListComplaints(context.Background())
	c.GetImpact(context.Background())
	c.Vote(context.Background(), 123, models.VoteRequest{VoterID: "a", Value: 1})

	if len(obs.calls) != 3 {
		t.Fatalf("observed %d calls, want 3", len(obs.calls))
	}
	if obs.calls[0].endpoint != "GET /complaints" || obs.calls[0].status != 200 || obs.calls[0].err != nil {
		t.Errorf("call[0] = %+v", obs.calls[0])
	}
	if obs.calls[1].endpoint != "GET /impact" || obs.calls[1].status != 500 || obs.calls[1].err == nil {
		t.Errorf("call[1] = %+v", obs.calls[1])
	}
	if obs.calls[2].endpoint != "POST /complaints/{id}/vote" {
		t.Errorf("vote endpoint label = %q", obs.calls[2].endpoint)
	}
}

func TestUserAgent(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		io.WriteString(w, "[]")
	}, WithUserAgent("clean-karachi-test"))

	c.ListComplaints(context.Background())
	if got != "clean-karachi-test" {
		t.Errorf("User-Agent = %q", got)
	}
}
