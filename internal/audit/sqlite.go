// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSink stores entries in an audit_entries table. Write order is the
// rowid order.
type SQLiteSink struct {
	db *sql.DB
}

// NewSQLiteSink opens or creates the database at path and its schema.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	s := &SQLiteSink{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS audit_entries (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			details TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entries_session ON audit_entries(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_entries_activity ON audit_entries(activity_type)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSink) Write(ctx context.Context, e Entry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("marshaling details: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO audit_entries (entry_id, session_id, timestamp, activity_type, details)
		 VALUES (?, ?, ?, ?, ?)`,
		e.EntryID, e.SessionID, e.Timestamp, string(e.ActivityType), string(details))
	if err != nil {
		return fmt.Errorf("inserting audit entry %s: %w", e.EntryID, err)
	}
	return nil
}

func (s *SQLiteSink) Entries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, session_id, timestamp, activity_type, details
		 FROM audit_entries WHERE session_id = ? ORDER BY rowid`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e        Entry
			activity string
			details  string
		)
		if err := rows.Scan(&e.EntryID, &e.SessionID, &e.Timestamp, &activity, &details); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.ActivityType = ActivityType(activity)
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			return nil, fmt.Errorf("parsing details of %s: %w", e.EntryID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteSink) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT session_id FROM audit_entries ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

// Close releases the database connection.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
