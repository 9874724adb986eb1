// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/clean-karachi/models"
)

// Advisory messages shown to the user
const (
	AdvisoryDemoData       = "Connected with demo data. Backend server unavailable."
	AdvisoryVoteDisabled   = "Voting disabled in demo mode. Start backend server to enable voting."
	AdvisoryCreateDisabled = "Complaint creation disabled in demo mode. Start backend server to submit complaints."
	AdvisorySeedDisabled   = "Seeding disabled in demo mode. Start backend server to enable seeding."
	AdvisoryInvalidDraft   = "Please provide title, lat, and lng"
	AdvisoryInvalidVote    = "Vote value must be 1 (support) or -1 (urgent)"
)

// journalTimeout bounds a single journal write.
const journalTimeout = 2 * time.Second

// Backend is the remote complaints API.
type Backend interface {
	ListComplaints(ctx context.Context) ([]models.Complaint, error)
	GetImpact(ctx context.Context) (models.ImpactStats, error)
	CreateComplaint(ctx context.Context, req models.CreateComplaintRequest) (models.Complaint, error)
	Vote(ctx context.Context, complaintID int64, req models.VoteRequest) error
	SeedExample(ctx context.Context) error
}

// Journal receives one entry per operation.
type Journal interface {
	Record(ctx context.Context, a models.Activity) error
}

// Recorder receives dashboard-level metrics.
type Recorder interface {
	RecordFallback(resource string)
	RecordRejection(action, reason string)
	SetConnectivity(state models.Connectivity)
}

// Result is returned by every operation. Connectivity is the state after
// the operation; Advisory is the message to show, if any.
type Result struct {
	Connectivity models.Connectivity `json:"connectivity"`
	Advisory     string              `json:"advisory,omitempty"`
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithJournal records every operation outcome.
func WithJournal(j Journal) Option {
	return func(d *Dashboard) {
		d.journal = j
	}
}

// WithRecorder reports fallbacks, rejections and connectivity.
func WithRecorder(r Recorder) Option {
	return func(d *Dashboard) {
		d.recorder = r
	}
}

// WithClock overrides time.Now (mock timestamps, relative times).
func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

// Dashboard keeps a local snapshot of complaints and impact stats in sync
// with the backend. All exported methods are safe for concurrent use.
type Dashboard struct {
	backend  Backend
	journal  Journal
	recorder Recorder
	now      func() time.Time

	mu                   sync.Mutex
	connectivity         models.Connectivity
	advisory             string
	complaints           []models.Complaint
	complaintsSource     models.DataSource
	complaintsGeneration uint64
	impact               *models.ImpactStats
	impactSource         models.DataSource
	loading              int
	creating             int
	seeding              int
	busy                 map[int64]int
	draft                models.ComplaintDraft
}

// New creates a dashboard in the loading state. Nothing is fetched until
// LoadComplaints, LoadImpact or Refresh is called.
func New(backend Backend, opts ...Option) *Dashboard {
	d := &Dashboard{
		backend:          backend,
		now:              time.Now,
		connectivity:     models.ConnectivityLoading,
		complaints:       []models.Complaint{},
		complaintsSource: models.SourceNone,
		impactSource:     models.SourceNone,
		busy:             make(map[int64]int),
		draft:            models.NewComplaintDraft(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.recorder != nil {
		d.recorder.SetConnectivity(d.connectivity)
	}
	return d
}

// Connectivity returns the current connectivity state.
func (d *Dashboard) Connectivity() models.Connectivity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connectivity
}

// Advisory returns the message left by the last operation.
func (d *Dashboard) Advisory() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.advisory
}

// Complaints returns a copy of the current collection and its generation.
// The generation increases every time the collection is replaced.
func (d *Dashboard) Complaints() ([]models.Complaint, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Complaint, len(d.complaints))
	copy(out, d.complaints)
	return out, d.complaintsGeneration
}

// Impact returns the current impact stats, nil before the first load.
func (d *Dashboard) Impact() *models.ImpactStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.impact == nil {
		return nil
	}
	stats := *d.impact
	return &stats
}

// LoadComplaints replaces the complaint collection with the backend's list.
// On any failure the mock set is substituted and the dashboard degrades.
// A successful load only restores live connectivity if the impact stats
// are not mock data either. It never returns an error.
func (d *Dashboard) LoadComplaints(ctx context.Context) Result {
	d.mu.Lock()
	d.loading++
	d.advisory = ""
	d.mu.Unlock()

	d.loadComplaints(ctx)

	d.mu.Lock()
	d.loading--
	d.settleLocked()
	res := d.resultLocked()
	d.mu.Unlock()

	return res
}

// LoadImpact replaces the impact stats, falling back to mock stats on
// failure. It is independent of LoadComplaints.
func (d *Dashboard) LoadImpact(ctx context.Context) Result {
	d.mu.Lock()
	d.loading++
	d.advisory = ""
	d.mu.Unlock()

	d.loadImpact(ctx)

	d.mu.Lock()
	d.loading--
	d.settleLocked()
	res := d.resultLocked()
	d.mu.Unlock()

	return res
}

// Refresh loads complaints and impact stats concurrently. Each load keeps
// its own outcome; the dashboard is live afterwards only if both succeeded.
// This is the way out of demo mode once both resources have fallen back.
func (d *Dashboard) Refresh(ctx context.Context) Result {
	d.mu.Lock()
	d.loading++
	d.advisory = ""
	d.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		d.loadComplaints(ctx)
	}()
	go func() {
		defer wg.Done()
		d.loadImpact(ctx)
	}()
	wg.Wait()

	d.mu.Lock()
	d.loading--
	d.settleLocked()
	res := d.resultLocked()
	d.mu.Unlock()

	return res
}

// loadComplaints fetches and swaps the collection. Connectivity is settled
// by the caller.
func (d *Dashboard) loadComplaints(ctx context.Context) {
	complaints, err := d.backend.ListComplaints(ctx)
	if err != nil {
		slog.Warn("using mock complaints", "error", err)

		d.mu.Lock()
		d.replaceComplaintsLocked(models.MockComplaints(d.now()), models.SourceMock)
		d.mu.Unlock()

		d.recordFallback("complaints")
		d.record(ctx, models.Activity{
			Action:       models.ActionLoadComplaints,
			Outcome:      models.OutcomeFallback,
			Advisory:     AdvisoryDemoData,
			Connectivity: models.ConnectivityDegraded,
		})
		return
	}

	for _, c := range complaints {
		if !c.Status.Valid() {
			slog.Warn("complaint has unknown status", "complaint_id", c.ID, "status", c.Status)
		}
	}

	d.mu.Lock()
	d.replaceComplaintsLocked(complaints, models.SourceLive)
	d.mu.Unlock()

	slog.Debug("complaints loaded", "count", len(complaints))
	d.record(ctx, models.Activity{
		Action:       models.ActionLoadComplaints,
		Outcome:      models.OutcomeOK,
		Connectivity: models.ConnectivityLive,
	})
}

func (d *Dashboard) loadImpact(ctx context.Context) {
	stats, err := d.backend.GetImpact(ctx)
	if err != nil {
		slog.Warn("using mock impact stats", "error", err)

		mock := models.MockImpactStats()
		d.mu.Lock()
		d.impact = &mock
		d.impactSource = models.SourceMock
		d.mu.Unlock()

		d.recordFallback("impact")
		d.record(ctx, models.Activity{
			Action:       models.ActionLoadImpact,
			Outcome:      models.OutcomeFallback,
			Advisory:     AdvisoryDemoData,
			Connectivity: models.ConnectivityDegraded,
		})
		return
	}

	d.mu.Lock()
	d.impact = &stats
	d.impactSource = models.SourceLive
	d.mu.Unlock()

	d.record(ctx, models.Activity{
		Action:       models.ActionLoadImpact,
		Outcome:      models.OutcomeOK,
		Connectivity: models.ConnectivityLive,
	})
}

func (d *Dashboard) replaceComplaintsLocked(complaints []models.Complaint, source models.DataSource) {
	d.complaints = complaints
	d.complaintsSource = source
	d.complaintsGeneration++
}

// settleLocked derives connectivity from the per-resource sources: degraded
// while either resource shows mock data, live once every loaded resource is
// live. The demo advisory is kept for as long as the dashboard is degraded.
func (d *Dashboard) settleLocked() {
	switch {
	case d.complaintsSource == models.SourceMock || d.impactSource == models.SourceMock:
		d.setConnectivityLocked(models.ConnectivityDegraded)
		if d.advisory == "" {
			d.advisory = AdvisoryDemoData
		}
	case d.complaintsSource == models.SourceNone && d.impactSource == models.SourceNone:
		d.setConnectivityLocked(models.ConnectivityLoading)
	default:
		d.setConnectivityLocked(models.ConnectivityLive)
	}
}

func (d *Dashboard) setConnectivityLocked(state models.Connectivity) {
	if d.connectivity != state {
		slog.Info("connectivity changed", "from", d.connectivity, "to", state)
	}
	d.connectivity = state
	if d.recorder != nil {
		d.recorder.SetConnectivity(state)
	}
}

func (d *Dashboard) resultLocked() Result {
	return Result{Connectivity: d.connectivity, Advisory: d.advisory}
}

func (d *Dashboard) recordFallback(resource string) {
	if d.recorder != nil {
		d.recorder.RecordFallback(resource)
	}
}

// record appends to the journal. Failures are logged and otherwise ignored.
func (d *Dashboard) record(ctx context.Context, a models.Activity) {
	if d.journal == nil {
		return
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = d.now()
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := d.journal.Record(jctx, a); err != nil {
		slog.Warn("failed to record activity", "error", err, "action", a.Action)
	}
}
