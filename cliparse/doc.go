// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - APIBase: Complaints backend root (default: http://localhost:8000)
  - RequestTimeout: Deadline for each backend call (default: 5s)
  - VoterID: Identity sent with votes when the caller gives none (default: web-demo-user)
  - DatabaseURL: Activity journal database (default: file:dashboard.db)
  - DatabaseType: sqlite or postgres (default: sqlite)

# CLI Flags

	-p        Server port
	-api      Backend base URL
	-timeout  Per-request timeout (Go duration, e.g. 5s)
	-voter    Default voter ID
	-d        Database URL
	-t        Database type

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	API_BASE        → -api
	REQUEST_TIMEOUT → -timeout
	VOTER_ID        → -voter
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so it feeds the same variables.

# Validation

ParseFlags returns an error if:

  - PORT or REQUEST_TIMEOUT cannot be parsed
  - the port is outside 1-65535 or the timeout is not positive
  - the API base is not an http(s) URL
  - the database type is neither sqlite nor postgres

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	client, err := apiclient.NewClient(cfg.APIBase, apiclient.WithTimeout(cfg.RequestTimeout))
	// ...
*/
package cliparse
