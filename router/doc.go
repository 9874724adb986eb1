// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Clean Karachi dashboard service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(dash, db, collector, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Dashboard state:

	GET  /dashboard         - Snapshot with stats and display strings
	POST /dashboard/refresh - Reload complaints and impact
	PUT  /dashboard/draft   - Replace the complaint draft
	GET  /dashboard/areas   - Per-area aggregates

Actions (refused with 409 in demo mode):

	POST /dashboard/complaints           - Submit a complaint
	POST /dashboard/complaints/{id}/vote - Cast a support/urgent vote
	POST /dashboard/seed                 - Ask the backend to seed examples

Journal:

	GET /dashboard/activity - Recent operation outcomes

Dashboard routes are wrapped in middleware.WithLogging. CORS is applied
around the whole mux by the caller.
*/
package router
