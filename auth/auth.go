// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// VoterHeader carries a caller-chosen voter identity.
const VoterHeader = "X-Voter-ID"

// DefaultVoterID is the identity sent when nobody supplies one.
const DefaultVoterID = "web-demo-user"

const maxVoterIDLen = 64

var (
	ErrInvalidVoterID = errors.New("invalid voter id")
)

// GenerateID creates a random UUID for journal rows and request IDs
func GenerateID() string {
	return uuid.NewString()
}

// ValidateVoterID checks length and charset.
// Allowed: letters, digits, '-', '_', '.'
func ValidateVoterID(id string) error {
	if id == "" || len(id) > maxVoterIDLen {
		return ErrInvalidVoterID
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-' || c == '_' || c == '.':
		default:
			return ErrInvalidVoterID
		}
	}
	return nil
}

// ResolveVoterID returns the voter identity for a request.
// The X-Voter-ID header wins; fallback is used when the header is absent.
func ResolveVoterID(r *http.Request, fallback string) (string, error) {
	id := strings.TrimSpace(r.Header.Get(VoterHeader))
	if id == "" {
		id = fallback
	}
	if id == "" {
		id = DefaultVoterID
	}
	if err := ValidateVoterID(id); err != nil {
		return "", err
	}
	return id, nil
}
