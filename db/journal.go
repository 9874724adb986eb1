// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/clean-karachi/auth"
	"github.com/danielhkuo/clean-karachi/models"
)

// DefaultActivityLimit is used when callers ask for a non-positive limit.
const DefaultActivityLimit = 50

// MaxActivityLimit caps a single read.
const MaxActivityLimit = 500

// Journal stores one row per dashboard operation.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

// Record appends an entry, filling in ID and time when missing.
func (j *Journal) Record(ctx context.Context, a models.Activity) error {
	if a.ID == "" {
		a.ID = auth.GenerateID()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now()
	}

	var complaintID sql.NullInt64
	if a.ComplaintID != nil {
		complaintID = sql.NullInt64{Int64: *a.ComplaintID, Valid: true}
	}
	advisory := sql.NullString{String: a.Advisory, Valid: a.Advisory != ""}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO activity (id, action, complaint_id, outcome, advisory, connectivity, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Action, complaintID, a.Outcome, advisory, string(a.Connectivity), a.OccurredAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, action, complaint_id, outcome, advisory, connectivity, occurred_at
		FROM activity
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	entries := []models.Activity{}
	for rows.Next() {
		var (
			a            models.Activity
			complaintID  sql.NullInt64
			advisory     sql.NullString
			connectivity string
			occurredAt   int64
		)
		if err := rows.Scan(&a.ID, &a.Action, &complaintID, &a.Outcome, &advisory, &connectivity, &occurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if complaintID.Valid {
			id := complaintID.Int64
			a.ComplaintID = &id
		}
		a.Advisory = advisory.String
		a.Connectivity = models.Connectivity(connectivity)
		a.OccurredAt = time.Unix(0, occurredAt).UTC()
		entries = append(entries, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity: %w", err)
	}
	return entries, nil
}
