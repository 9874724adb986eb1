// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dashboard keeps a local view of complaints and impact stats in sync
with the complaints backend.

# Connectivity

A Dashboard starts in the loading state and settles after its first load:

	loading → live      (backend answered)
	loading → degraded  (fallback to mock data)
	degraded → live     (no resource is showing mock data any more)

Every operation returns a Result carrying the connectivity after the call
and the advisory message to show, if any. Degraded is demo mode: Vote,
CreateComplaint and SeedExample are refused locally with ErrDemoMode and
no request is sent.

# Loads

	dash := dashboard.New(client, dashboard.WithJournal(journal))
	res := dash.Refresh(ctx)

LoadComplaints and LoadImpact never fail. A transport error, timeout,
non-2xx status or undecodable body replaces the resource with its mock
counterpart. Connectivity follows both resources: the dashboard stays
degraded while either one is mock data. Refresh runs both loads
concurrently and is live only when both succeeded.

# Mutations

Each successful write reloads what it changed:

	Vote            → LoadComplaints
	CreateComplaint → LoadComplaints, then LoadImpact
	SeedExample     → LoadComplaints

A failed write leaves the backend's message in the advisory. Nothing is
retried or rolled back.

# Views

Snapshot copies the whole state and adds derived stats (cleanliness score,
resolution rate) and display strings. Areas groups complaints by NA/PS code.
*/
package dashboard
