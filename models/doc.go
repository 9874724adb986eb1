// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines backend, dashboard, and service types.

# Backend Types

Types exchanged with the complaints backend:

  - Complaint: complaint record (status is backend-owned)
  - Representative: MNA/MPA assigned to a complaint
  - ImpactStats: campaign-wide counters
  - CreateComplaintRequest: title, description?, lat, lng, address?
  - VoteRequest: voter_id, value (+1 or -1)

# Dashboard Types

Local view state:

  - ComplaintDraft: raw complaint form strings
  - DashboardSnapshot: everything a display layer needs to render
  - DashboardStats: counts derived from the current collection
  - AreaStats: per-area aggregation
  - Activity: journal entry for one dashboard operation

# Connectivity

The dashboard is always in one of three states:

	ConnectivityLoading  = "loading"
	ConnectivityLive     = "live"
	ConnectivityDegraded = "degraded"

Degraded is demo mode: mock data is shown and mutating actions are
rejected locally.

# Mock Data

MockComplaints, MockImpactStats, and MockAreas return the fixed fallback
set used when the backend cannot be reached.
*/
package models
