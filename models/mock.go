// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// MockComplaints returns the fixed fallback collection shown in demo mode.
// Timestamps are relative to now so the list always looks recent.
func MockComplaints(now time.Time) []Complaint {
	now = now.UTC()
	return []Complaint{
		{
			ID:          1,
			Title:       "Garbage accumulation in DHA Phase 6",
			Description: strPtr("Large pile of garbage not collected for 5 days near main market"),
			Lat:         24.8607,
			Lng:         67.0011,
			Address:     strPtr("DHA Phase 6, Karachi"),
			AreaCodeNA:  strPtr("NA-247"),
			AreaCodePS:  strPtr("PS-110"),
			Status:      StatusNew,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Sewage overflow in Gulshan",
			Description: strPtr("Sewage line broken causing overflow on main road"),
			Lat:         24.9300,
			Lng:         67.1300,
			Address:     strPtr("Gulshan-e-Iqbal, Karachi"),
			AreaCodeNA:  strPtr("NA-242"),
			AreaCodePS:  strPtr("PS-102"),
			Status:      StatusInProgress,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now,
		},
	}
}

// MockImpactStats returns the fallback campaign counters.
func MockImpactStats() ImpactStats {
	return ImpactStats{
		IssuesResolved:     15000,
		AreasCovered:       200,
		ActiveUsers:        50000,
		AvgResolutionHours: 48,
	}
}

// MockAreas returns the district table shown when no live complaint
// carries area codes.
func MockAreas() []AreaStats {
	return []AreaStats{
		{Name: "Karachi South (Clifton-DHA)", NACode: "NA-247", PSCode: "PS-110", TotalComplaints: 3420, Resolved: 2980, InProgress: 320, AvgResolutionHours: 36, CleanlinessScore: 88, Band: BandGood},
		{Name: "Karachi East (Gulshan)", NACode: "NA-242", PSCode: "PS-102", TotalComplaints: 2870, Resolved: 2450, InProgress: 290, AvgResolutionHours: 42, CleanlinessScore: 85, Band: BandGood},
		{Name: "Karachi Central", NACode: "NA-244", PSCode: "PS-115", TotalComplaints: 4120, Resolved: 3520, InProgress: 480, AvgResolutionHours: 54, CleanlinessScore: 78, Band: BandFair},
		{Name: "Karachi West", NACode: "NA-241", PSCode: "PS-108", TotalComplaints: 2980, Resolved: 2340, InProgress: 520, AvgResolutionHours: 62, CleanlinessScore: 72, Band: BandFair},
		{Name: "Malir District", NACode: "NA-239", PSCode: "PS-98", TotalComplaints: 1870, Resolved: 1420, InProgress: 380, AvgResolutionHours: 68, CleanlinessScore: 68, Band: BandPoor},
		{Name: "Korangi District", NACode: "NA-254", PSCode: "PS-129", TotalComplaints: 3250, Resolved: 2680, InProgress: 450, AvgResolutionHours: 58, CleanlinessScore: 75, Band: BandFair},
	}
}

// AreaNames maps known NA codes to district names.
var AreaNames = map[string]string{
	"NA-247": "Karachi South (Clifton-DHA)",
	"NA-242": "Karachi East (Gulshan)",
	"NA-244": "Karachi Central",
	"NA-241": "Karachi West",
	"NA-239": "Malir District",
	"NA-254": "Korangi District",
}

func strPtr(s string) *string { return &s }
