// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the HTTP client for the complaints backend.

# Endpoints

	GET  /complaints            → ListComplaints
	GET  /impact                → GetImpact
	POST /complaints            → CreateComplaint
	POST /complaints/{id}/vote  → Vote
	POST /seed/example          → SeedExample

# Deadlines

Every call runs under its own context.WithTimeout layered on the caller's
context (default 5s):

	c, err := apiclient.NewClient(cfg.APIBase, apiclient.WithTimeout(cfg.RequestTimeout))

# Errors

Non-2xx answers return *StatusError, whose message carries the backend's
body verbatim:

	Vote failed (409): already voted

Transport failures and timeouts are wrapped with %w. Callers that only need
to show the user what happened can use err.Error() for all three.
*/
package apiclient
