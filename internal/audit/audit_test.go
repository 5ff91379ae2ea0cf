// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/policy-engine/pkg/types"
)

var fixedNow = time.Date(2026, 6, 1, 14, 5, 9, 0, time.UTC)

// sinkFactories builds one of each sink rooted in a temp directory.
var sinkFactories = []struct {
	name string
	open func(t *testing.T) Sink
}{
	{"memory", func(t *testing.T) Sink { return NewMemorySink() }},
	{"jsonl", func(t *testing.T) Sink {
		s, err := NewJSONLSink(filepath.Join(t.TempDir(), "audit"))
		require.NoError(t, err)
		return s
	}},
	{"sqlite", func(t *testing.T) Sink {
		s, err := NewSQLiteSink(filepath.Join(t.TempDir(), "audit", "audit.db"))
		require.NoError(t, err)
		return s
	}},
}

func TestSessionID(t *testing.T) {
	l := NewLogger(NewMemorySink(), WithClock(func() time.Time { return fixedNow }))
	assert.Equal(t, "session_20260601_140509", l.SessionID())

	l = NewLogger(NewMemorySink(), WithSessionID("session_custom"))
	assert.Equal(t, "session_custom", l.SessionID())
}

func TestLoggerAcrossSinks(t *testing.T) {
	ctx := context.Background()
	for _, sf := range sinkFactories {
		t.Run(sf.name, func(t *testing.T) {
			sink := sf.open(t)
			defer sink.Close()
			l := NewLogger(sink, WithClock(func() time.Time { return fixedNow }))

			id1, err := l.EvidenceExtraction(ctx, "cardiac rehab", 3, "file")
			require.NoError(t, err)
			_, err = l.EvidenceProcessing(ctx, 3, 1, "Cardiac rehabilitation")
			require.NoError(t, err)
			_, err = l.PolicyGeneration(ctx, "clinical_policy", "policy-engine/template", 3, "POL-20260601-001")
			require.NoError(t, err)
			_, err = l.ComplianceValidation(ctx, "POL-20260601-001", "needs_review", 0.85, 2)
			require.NoError(t, err)
			_, err = l.Decision(ctx, "approval", "send to committee", "score above 0.7", nil)
			require.NoError(t, err)
			_, err = l.Export(ctx, "POL-20260601-001", "markdown", "/tmp/policy.md")
			require.NoError(t, err)

			_, err = uuid.Parse(id1)
			require.NoError(t, err)

			entries, err := l.Trail(ctx, "")
			require.NoError(t, err)
			require.Len(t, entries, 6)

			first := entries[0]
			assert.Equal(t, id1, first.EntryID)
			assert.Equal(t, l.SessionID(), first.SessionID)
			assert.Equal(t, ActivityEvidenceExtraction, first.ActivityType)
			assert.Equal(t, "cardiac rehab", first.Details["query"])
			assert.EqualValues(t, 3, first.Details["article_count"])
			assert.Equal(t, "2026-06-01T14:05:09Z", first.Timestamp)

			want := []ActivityType{
				ActivityEvidenceExtraction, ActivityEvidenceProcessing, ActivityPolicyGeneration,
				ActivityComplianceValidation, ActivityDecision, ActivityExport,
			}
			for i, e := range entries {
				assert.Equal(t, want[i], e.ActivityType)
			}
			assert.InDelta(t, 0.85, entries[3].Details["compliance_score"], 1e-9)
			assert.NotNil(t, entries[4].Details["supporting_data"])

			sessions, err := sink.Sessions(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{l.SessionID()}, sessions)
		})
	}
}

func TestUnknownSessionIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, sf := range sinkFactories {
		t.Run(sf.name, func(t *testing.T) {
			sink := sf.open(t)
			defer sink.Close()

			entries, err := sink.Entries(ctx, "session_missing")
			require.NoError(t, err)
			assert.NotNil(t, entries)
			assert.Empty(t, entries)
		})
	}
}

func TestSessionsAreSeparate(t *testing.T) {
	ctx := context.Background()
	for _, sf := range sinkFactories {
		t.Run(sf.name, func(t *testing.T) {
			sink := sf.open(t)
			defer sink.Close()

			a := NewLogger(sink, WithSessionID("session_a"))
			b := NewLogger(sink, WithSessionID("session_b"))
			_, err := a.EvidenceExtraction(ctx, "q", 1, "file")
			require.NoError(t, err)
			_, err = b.EvidenceExtraction(ctx, "q", 2, "file")
			require.NoError(t, err)
			_, err = a.Export(ctx, "p", "json", "out.json")
			require.NoError(t, err)

			ea, err := a.Trail(ctx, "")
			require.NoError(t, err)
			assert.Len(t, ea, 2)

			eb, err := a.Trail(ctx, "session_b")
			require.NoError(t, err)
			assert.Len(t, eb, 1)

			sessions, err := sink.Sessions(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"session_a", "session_b"}, sessions)
		})
	}
}

func TestBuildReport(t *testing.T) {
	entries := []Entry{
		{EntryID: "1", SessionID: "session_x", Timestamp: "t1", ActivityType: ActivityEvidenceExtraction},
		{EntryID: "2", SessionID: "session_x", Timestamp: "t2", ActivityType: ActivityExport},
		{EntryID: "3", SessionID: "session_x", Timestamp: "t3", ActivityType: ActivityExport},
	}
	r := BuildReport("session_x", entries)

	assert.Equal(t, "session_x", r.SessionID)
	assert.Equal(t, "t1", r.StartTime)
	assert.Equal(t, "t3", r.EndTime)
	assert.Equal(t, 3, r.TotalActivities)
	assert.Equal(t, map[ActivityType]int{ActivityEvidenceExtraction: 1, ActivityExport: 2}, r.ActivitySummary)
	assert.Empty(t, r.Error)
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport("session_none", nil)
	assert.Equal(t, "session_none", r.SessionID)
	assert.Equal(t, "No audit entries found", r.Error)
	assert.Zero(t, r.TotalActivities)
	assert.Empty(t, r.Entries)
}

func TestLoggerReport(t *testing.T) {
	ctx := context.Background()
	l := NewLogger(NewMemorySink(), WithSessionID("session_r"))
	_, err := l.Decision(ctx, "scope", "include", "matches topic", map[string]any{"n": 1})
	require.NoError(t, err)

	r, err := l.Report(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 1, r.TotalActivities)
	assert.Equal(t, 1, r.ActivitySummary[ActivityDecision])

	path := filepath.Join(t.TempDir(), "reports", "session_r_report.json")
	require.NoError(t, WriteReport(path, r))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "session_r", decoded["session_id"])
	assert.NotContains(t, decoded, "error")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend types.AuditBackend
		want    any
		wantErr error
	}{
		{types.AuditMemory, &MemorySink{}, nil},
		{"", &JSONLSink{}, nil},
		{types.AuditJSONL, &JSONLSink{}, nil},
		{types.AuditSQLite, &SQLiteSink{}, nil},
		{"kafka", nil, ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			s, err := Open(types.AuditConfig{Backend: tt.backend, Dir: dir})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestJSONLSinkCorruptLine(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONLSink(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_bad.jsonl"), []byte("{not json}\n"), 0o644))

	_, err = s.Entries(context.Background(), "session_bad")
	assert.ErrorContains(t, err, "line 1")
}
