// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit records an append-only trail of engine activity.
//
// A Logger stamps each entry with a uuid, the session ID and a timestamp,
// then hands it to a Sink. Sinks keep entries in memory, in one JSON Lines
// file per session, or in SQLite. BuildReport summarizes a session.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ActivityType classifies an audit entry.
type ActivityType string

const (
	ActivityEvidenceExtraction   ActivityType = "evidence_extraction"
	ActivityEvidenceProcessing   ActivityType = "evidence_processing"
	ActivityPolicyGeneration     ActivityType = "policy_generation"
	ActivityComplianceValidation ActivityType = "compliance_validation"
	ActivityDecision             ActivityType = "decision"
	ActivityExport               ActivityType = "export"
)

// Entry is one audit record. Details values must be JSON-encodable.
type Entry struct {
	EntryID      string         `json:"entry_id"`
	SessionID    string         `json:"session_id"`
	Timestamp    string         `json:"timestamp"`
	ActivityType ActivityType   `json:"activity_type"`
	Details      map[string]any `json:"details"`
}

const noEntriesError = "No audit entries found"

// Report summarizes one session's entries.
type Report struct {
	SessionID       string               `json:"session_id"`
	StartTime       string               `json:"start_time,omitempty"`
	EndTime         string               `json:"end_time,omitempty"`
	TotalActivities int                  `json:"total_activities"`
	ActivitySummary map[ActivityType]int `json:"activity_summary"`
	Entries         []Entry              `json:"entries"`
	Error           string               `json:"error,omitempty"`
}

// BuildReport summarizes entries, which must be in write order. With no
// entries the report carries only the session ID and an error message.
func BuildReport(sessionID string, entries []Entry) Report {
	r := Report{
		SessionID:       sessionID,
		ActivitySummary: map[ActivityType]int{},
		Entries:         []Entry{},
	}
	if len(entries) == 0 {
		r.Error = noEntriesError
		return r
	}
	if entries[0].SessionID != "" {
		r.SessionID = entries[0].SessionID
	}
	r.StartTime = entries[0].Timestamp
	r.EndTime = entries[len(entries)-1].Timestamp
	r.TotalActivities = len(entries)
	r.Entries = entries
	for _, e := range entries {
		r.ActivitySummary[e.ActivityType]++
	}
	return r
}

// WriteReport writes r to path as indented JSON, creating the parent
// directory.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling audit report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing audit report: %w", err)
	}
	return nil
}
