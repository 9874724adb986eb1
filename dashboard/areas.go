// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"math"
	"sort"

	"github.com/danielhkuo/clean-karachi/models"
)

type areaKey struct {
	na, ps string
}

// Areas groups the current complaints by constituency code pair. When no
// complaint carries an NA code the fixed district table is returned with
// source mock.
func (d *Dashboard) Areas() models.AreasResponse {
	d.mu.Lock()
	complaints := make([]models.Complaint, len(d.complaints))
	copy(complaints, d.complaints)
	source := d.complaintsSource
	d.mu.Unlock()

	areas := AggregateAreas(complaints)
	if len(areas) == 0 {
		return SummarizeAreas(models.SourceMock, models.MockAreas())
	}
	return SummarizeAreas(source, areas)
}

// SummarizeAreas adds the city-wide totals to a set of areas. The average
// score is the rounded mean of the per-area scores, 0 when there are none.
func SummarizeAreas(source models.DataSource, areas []models.AreaStats) models.AreasResponse {
	resp := models.AreasResponse{Source: source, Areas: areas}
	score := 0
	for _, a := range areas {
		resp.TotalComplaints += a.TotalComplaints
		resp.TotalResolved += a.Resolved
		score += a.CleanlinessScore
	}
	if len(areas) > 0 {
		resp.AvgCleanlinessScore = int(math.Round(float64(score) / float64(len(areas))))
	}
	return resp
}

// AggregateAreas computes per-area stats, ordered by NA then PS code.
// Complaints without an NA code are skipped.
func AggregateAreas(complaints []models.Complaint) []models.AreaStats {
	type acc struct {
		stats         models.AreaStats
		resolvedHours float64
		resolvedTimed int
	}

	groups := make(map[areaKey]*acc)
	for _, c := range complaints {
		if c.AreaCodeNA == nil || *c.AreaCodeNA == "" {
			continue
		}
		key := areaKey{na: *c.AreaCodeNA}
		if c.AreaCodePS != nil {
			key.ps = *c.AreaCodePS
		}

		g, ok := groups[key]
		if !ok {
			name, known := models.AreaNames[key.na]
			if !known {
				name = key.na
			}
			g = &acc{stats: models.AreaStats{Name: name, NACode: key.na, PSCode: key.ps}}
			groups[key] = g
		}

		g.stats.TotalComplaints++
		switch c.Status {
		case models.StatusResolved:
			g.stats.Resolved++
			if c.ResolvedAt != nil && c.ResolvedAt.After(c.CreatedAt) {
				g.resolvedHours += c.ResolvedAt.Sub(c.CreatedAt).Hours()
				g.resolvedTimed++
			}
		case models.StatusInProgress:
			g.stats.InProgress++
		}
	}

	out := make([]models.AreaStats, 0, len(groups))
	for _, g := range groups {
		s := g.stats
		if g.resolvedTimed > 0 {
			s.AvgResolutionHours = math.Round(g.resolvedHours/float64(g.resolvedTimed)*10) / 10
		}
		s.CleanlinessScore = cleanlinessScore(s.TotalComplaints - s.Resolved)
		s.Band = Band(s.CleanlinessScore)
		out = append(out, s)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].NACode != out[j].NACode {
			return out[i].NACode < out[j].NACode
		}
		return out[i].PSCode < out[j].PSCode
	})
	return out
}

// Band classifies a cleanliness score.
func Band(score int) string {
	switch {
	case score >= 85:
		return models.BandGood
	case score >= 70:
		return models.BandFair
	default:
		return models.BandPoor
	}
}
