// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Clean Karachi
dashboard service.

# Handler Types

Each handler is a struct built from its dependencies and Config:

  - DashboardHandler: snapshot, refresh, draft, complaint actions, areas
  - ActivityHandler: recent entries from the operation journal

Handlers are created via constructor functions:

	dashHandler := handlers.NewDashboardHandler(dash, cfg)
	activityHandler := handlers.NewActivityHandler(db, cfg)

# Dashboard Reads

	GET  /dashboard          → GetSnapshot
	POST /dashboard/refresh  → Refresh (returns the new snapshot)
	PUT  /dashboard/draft    → UpdateDraft
	GET  /dashboard/areas    → GetAreas

A refresh that falls back to demo data still answers 200; the snapshot's
connectivity and demo_mode fields say what happened.

# Actions

	POST /dashboard/complaints           → CreateComplaint (body: draft)
	POST /dashboard/complaints/{id}/vote → Vote (body: {"value": 1 | -1})
	POST /dashboard/seed                 → Seed

Actions answer {ok, advisory, connectivity}:

	200/201  done, data reloaded
	400      invalid draft or vote direction (no backend call)
	409      demo mode (no backend call)
	502      backend refused or unreachable; advisory carries its message

Votes are cast as the X-Voter-ID header identity, else the configured
default voter.

Action handlers detach from the request's cancellation. The dashboard
state is shared, and backend calls are bounded by the client timeout.

# Activity

	GET /dashboard/activity?limit=N → GetActivity
*/
package handlers
