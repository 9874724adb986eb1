// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Clean Karachi dashboard server.

The server keeps a dashboard of civic complaints and city-wide impact
stats loaded from a complaints REST backend. When the backend cannot be
reached it shows built-in demo data and refuses votes, submissions and
seeding until a reload succeeds.

# Starting the Server

Every setting has a default, so a bare start works against a local backend:

	go run .

Or with flags:

	go run . -p 3000 -api http://localhost:8000 -timeout 5s

A .env file in the working directory is loaded first if present.

# Configuration

  - PORT (-p): Server port (default: 3000)
  - API_BASE (-api): Complaints backend base URL (default: http://localhost:8000)
  - REQUEST_TIMEOUT (-timeout): Per-request backend timeout (default: 5s)
  - VOTER_ID (-voter): Voter identity when X-Voter-ID is absent (default: web-demo-user)
  - DATABASE_URL (-d): Journal database (default: file:dashboard.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

Flags override environment variables.

# Architecture

  - apiclient: Typed client for the complaints backend
  - dashboard: Connectivity state, fallback, actions, derived views
  - handlers: HTTP request handlers (dashboard, activity)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, JSON helpers
  - metrics: Prometheus collector
  - models: Wire and view types, mock data
  - auth: Voter and request identifiers
  - db: Journal schema and storage
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
