// Package history persists a log of script invocations in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Invocation is one recorded script run.
type Invocation struct {
	ID        string
	Script    string
	Status    string
	ErrorKind string
	Message   string
	Duration  time.Duration
	StartedAt time.Time
}

// Statuses recorded for an invocation.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// timeLayout is fixed-width so lexicographic order on the stored column is
// chronological (RFC3339Nano trims trailing zeros and is not).
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store reads and writes invocation records.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts one invocation.
func (s *Store) Record(inv Invocation) error {
	var kind, msg interface{}
	if inv.ErrorKind != "" {
		kind = inv.ErrorKind
	}
	if inv.Message != "" {
		msg = inv.Message
	}
	_, err := s.db.Exec(
		`INSERT INTO invocations (id, script, status, error_kind, message, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Script, inv.Status, kind, msg,
		inv.Duration.Milliseconds(), inv.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// RecordRun is the flat-argument form of Record used by the transform
// engine's recorder hook.
func (s *Store) RecordRun(id, script, status, errorKind, message string, duration time.Duration, startedAt time.Time) error {
	return s.Record(Invocation{
		ID:        id,
		Script:    script,
		Status:    status,
		ErrorKind: errorKind,
		Message:   message,
		Duration:  duration,
		StartedAt: startedAt,
	})
}

// List returns the most recent invocations, newest first. A non-positive
// limit returns everything.
func (s *Store) List(limit int) ([]Invocation, error) {
	q := `SELECT id, script, status, error_kind, message, duration_ms, started_at
	      FROM invocations ORDER BY started_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list invocations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var kind, msg sql.NullString
		var durMS int64
		var started string
		if err := rows.Scan(&inv.ID, &inv.Script, &inv.Status, &kind, &msg, &durMS, &started); err != nil {
			return nil, err
		}
		inv.ErrorKind = kind.String
		inv.Message = msg.String
		inv.Duration = time.Duration(durMS) * time.Millisecond
		if ts, err := time.Parse(timeLayout, started); err == nil {
			inv.StartedAt = ts
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep records. A non-positive keep is a
// no-op.
func (s *Store) Prune(keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := s.db.Exec(
		`DELETE FROM invocations WHERE id NOT IN (
		     SELECT id FROM invocations ORDER BY started_at DESC, id LIMIT ?
		 )`, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune invocations: %w", err)
	}
	return res.RowsAffected()
}
