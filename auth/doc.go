// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity and ID generation utilities.

# Voter Identity

Votes carry a voter_id. The dashboard does not authenticate voters; it
forwards an identity and leaves deduplication to the backend:

	voterID, err := auth.ResolveVoterID(r, cfg.VoterID)

Resolution order:

  - X-Voter-ID request header
  - configured fallback (VOTER_ID, default "web-demo-user")

IDs must be 1-64 characters of letters, digits, '-', '_' or '.'.
ValidateVoterID returns ErrInvalidVoterID otherwise.

# ID Generation

Random UUIDs for journal rows and request IDs:

	id := auth.GenerateID()
*/
package auth
