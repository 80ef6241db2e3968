// Package journal records session events in an in-memory SQLite log.
//
// The log lives only as long as the process: Open always uses a private
// ":memory:" database. It backs the session "history" command and the
// debug trail for exports and self-checks.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Event kinds recorded by the session.
const (
	KindCouncil   = "council"
	KindProject   = "project"
	KindClassify  = "classify"
	KindConfirm   = "confirm"
	KindCancel    = "cancel"
	KindToggle    = "toggle"
	KindFigure    = "figure"
	KindExport    = "export"
	KindSelfCheck = "selfcheck"
)

// Event is one journal entry.
type Event struct {
	Seq       int64             `json:"seq"`
	SessionID string            `json:"session_id"`
	Kind      string            `json:"kind"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Journal is an append-only event log.
type Journal struct {
	db    *sql.DB
	clock Sequencer
}

// Open creates an empty in-memory journal. A nil clock uses NewClock.
func Open(clock Sequencer) (*Journal, error) {
	if clock == nil {
		clock = NewClock()
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// Each connection to ":memory:" is a separate database, so pin one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db, clock: clock}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close releases the database. The log is gone afterwards.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Append stamps an event with the next sequence number and stores it.
func (j *Journal) Append(ctx context.Context, sessionID, kind string, detail map[string]string) (Event, error) {
	if detail == nil {
		detail = map[string]string{}
	}
	// encoding/json sorts map keys, so detail is stored canonically.
	payload, err := json.Marshal(detail)
	if err != nil {
		return Event{}, fmt.Errorf("append %s: %w", kind, err)
	}

	ev := Event{Seq: j.clock.Next(), SessionID: sessionID, Kind: kind}
	if len(detail) > 0 {
		ev.Detail = detail
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO events (seq, session_id, kind, detail) VALUES (?, ?, ?, ?)`,
		ev.Seq, ev.SessionID, ev.Kind, string(payload),
	)
	if err != nil {
		return Event{}, fmt.Errorf("append %s: %w", kind, err)
	}
	return ev, nil
}

// List returns the session's events in seq order.
func (j *Journal) List(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT seq, session_id, kind, detail FROM events WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var payload string
		if err := rows.Scan(&ev.Seq, &ev.SessionID, &ev.Kind, &payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &ev.Detail); err != nil {
			return nil, fmt.Errorf("decode event %d: %w", ev.Seq, err)
		}
		if len(ev.Detail) == 0 {
			ev.Detail = nil
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CountByKind returns how many events of each kind the session has.
func (j *Journal) CountByKind(ctx context.Context, sessionID string) (map[string]int, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM events WHERE session_id = ? GROUP BY kind ORDER BY kind`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
