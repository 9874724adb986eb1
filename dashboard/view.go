// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/clean-karachi/models"
)

// emptyCleanlinessScore is shown before any complaint is known.
const emptyCleanlinessScore = 82

// Display fallbacks used until impact stats have been loaded
const (
	fallbackIssuesResolved = "15,000+"
	fallbackAreasCovered   = "200+"
	fallbackActiveUsers    = "50,000+"
	fallbackAvgResolution  = "48h"
)

// Snapshot returns a consistent copy of the dashboard state together with
// the stats and display strings derived from it.
func (d *Dashboard) Snapshot() models.DashboardSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	views := make([]models.ComplaintView, len(d.complaints))
	for i, c := range d.complaints {
		views[i] = models.ComplaintView{
			Complaint:   c,
			Busy:        d.busy[c.ID] > 0,
			ReportedAgo: relativeTime(c.CreatedAt, now),
		}
		if c.ResolvedAt != nil {
			views[i].ResolvedAgo = relativeTime(*c.ResolvedAt, now)
		}
	}

	var impact *models.ImpactStats
	if d.impact != nil {
		stats := *d.impact
		impact = &stats
	}

	return models.DashboardSnapshot{
		Connectivity:         d.connectivity,
		DemoMode:             d.connectivity.DemoMode(),
		Advisory:             d.advisory,
		Loading:              d.loading > 0,
		Creating:             d.creating > 0,
		Seeding:              d.seeding > 0,
		Complaints:           views,
		ComplaintsSource:     d.complaintsSource,
		ComplaintsGeneration: d.complaintsGeneration,
		Impact:               impact,
		ImpactSource:         d.impactSource,
		Stats:                ComputeStats(d.complaints),
		Display:              FormatImpact(impact),
		Draft:                d.draft,
	}
}

// ComputeStats counts complaints per status and derives the resolution rate
// and cleanliness score.
func ComputeStats(complaints []models.Complaint) models.DashboardStats {
	stats := models.DashboardStats{
		Total:    len(complaints),
		ByStatus: make(map[models.ComplaintStatus]int, len(models.AllStatuses)),
	}
	for _, s := range models.AllStatuses {
		stats.ByStatus[s] = 0
	}
	for _, c := range complaints {
		stats.ByStatus[c.Status]++
	}

	stats.Resolved = stats.ByStatus[models.StatusResolved]
	stats.InProgress = stats.ByStatus[models.StatusInProgress]
	stats.New = stats.ByStatus[models.StatusNew]

	if stats.Total == 0 {
		stats.CleanlinessScore = emptyCleanlinessScore
		return stats
	}

	stats.ResolutionRate = int(math.Round(float64(stats.Resolved) / float64(stats.Total) * 100))
	stats.CleanlinessScore = cleanlinessScore(stats.Total - stats.Resolved)
	return stats
}

// cleanlinessScore drops two points per unresolved complaint, floored at 0.
func cleanlinessScore(unresolved int) int {
	return max(0, 100-2*unresolved)
}

// FormatImpact renders impact stats for display. A nil stats value yields
// the campaign's headline figures.
func FormatImpact(stats *models.ImpactStats) models.DisplayStrings {
	if stats == nil {
		return models.DisplayStrings{
			IssuesResolved: fallbackIssuesResolved,
			AreasCovered:   fallbackAreasCovered,
			ActiveUsers:    fallbackActiveUsers,
			AvgResolution:  fallbackAvgResolution,
		}
	}

	avg := fallbackAvgResolution
	if stats.AvgResolutionHours > 0 {
		avg = fmt.Sprintf("%dh", int64(math.Round(stats.AvgResolutionHours)))
	}

	return models.DisplayStrings{
		IssuesResolved: humanize.Comma(int64(stats.IssuesResolved)),
		AreasCovered:   humanize.Comma(int64(stats.AreasCovered)),
		ActiveUsers:    humanize.Comma(int64(stats.ActiveUsers)),
		AvgResolution:  avg,
	}
}

func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
