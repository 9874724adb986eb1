// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/clean-karachi/models"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of a failed response is kept for the advisory.
const maxErrorBody = 4 << 10

// StatusError is returned when the backend answers outside the 2xx range.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed (%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Body)
}

// Observer is told about every completed backend call.
type Observer interface {
	ObserveRequest(endpoint string, status int, err error, elapsed time.Duration)
}

// Client talks to the complaints backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	observer   Observer
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithObserver registers an observer for request outcomes.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		userAgent:  "clean-karachi-dashboard/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call deadline.
func (c *Client) Timeout() time.Duration { return c.timeout }

// ListComplaints handles GET /complaints
func (c *Client) ListComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := c.do(ctx, "Load complaints", http.MethodGet, "/complaints", nil, &complaints); err != nil {
		return nil, err
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return complaints, nil
}

// GetImpact handles GET /impact
func (c *Client) GetImpact(ctx context.Context) (models.ImpactStats, error) {
	var stats models.ImpactStats
	if err := c.do(ctx, "Impact stats", http.MethodGet, "/impact", nil, &stats); err != nil {
		return models.ImpactStats{}, err
	}
	return stats, nil
}

// CreateComplaint handles POST /complaints
func (c *Client) CreateComplaint(ctx context.Context, req models.CreateComplaintRequest) (models.Complaint, error) {
	var created models.Complaint
	if err := c.do(ctx, "Create", http.MethodPost, "/complaints", req, &created); err != nil {
		return models.Complaint{}, err
	}
	return created, nil
}

// Vote handles POST /complaints/{id}/vote
func (c *Client) Vote(ctx context.Context, complaintID int64, req models.VoteRequest) error {
	path := "/complaints/" + strconv.FormatInt(complaintID, 10) + "/vote"
	return c.do(ctx, "Vote", http.MethodPost, path, req, nil)
}

// SeedExample handles POST /seed/example
func (c *Client) SeedExample(ctx context.Context) error {
	return c.do(ctx, "Seed", http.MethodPost, "/seed/example", nil, nil)
}

// do runs one request under its own deadline. Transport errors, timeouts,
// and non-2xx answers all come back as errors; out may be nil.
func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	status := 0
	if c.observer != nil {
		defer func() {
			c.observer.ObserveRequest(method+" "+endpointLabel(path), status, err, time.Since(start))
		}()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", strings.ToLower(op), err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodGet {
		req.Header.Set("Cache-Control", "no-store")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", op, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", strings.ToLower(op), err)
	}
	return nil
}

// endpointLabel collapses complaint IDs so metric labels stay bounded.
func endpointLabel(path string) string {
	if strings.HasPrefix(path, "/complaints/") && strings.HasSuffix(path, "/vote") {
		return "/complaints/{id}/vote"
	}
	return path
}
