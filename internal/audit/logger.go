// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Logger writes entries for one session to a Sink.
type Logger struct {
	sink      Sink
	sessionID string
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock sets the clock used for the session ID and entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(l *Logger) { l.sessionID = id }
}

// WithLogger sets the slog logger.
func WithLogger(sl *slog.Logger) Option {
	return func(l *Logger) { l.logger = sl }
}

// NewLogger starts a session on sink. The session ID has the form
// session_YYYYMMDD_HHMMSS unless set with WithSessionID.
func NewLogger(sink Sink, opts ...Option) *Logger {
	l := &Logger{
		sink:   sink,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sessionID == "" {
		l.sessionID = "session_" + l.now().Format("20060102_150405")
	}
	l.logger = l.logger.With("component", "audit", "session_id", l.sessionID)
	return l
}

// SessionID returns the current session ID.
func (l *Logger) SessionID() string { return l.sessionID }

// Record writes one entry and returns its ID.
func (l *Logger) Record(ctx context.Context, activity ActivityType, details map[string]any) (string, error) {
	if details == nil {
		details = map[string]any{}
	}
	e := Entry{
		EntryID:      l.newID(),
		SessionID:    l.sessionID,
		Timestamp:    l.now().Format(time.RFC3339Nano),
		ActivityType: activity,
		Details:      details,
	}
	if err := l.sink.Write(ctx, e); err != nil {
		return "", fmt.Errorf("recording %s: %w", activity, err)
	}
	l.logger.Debug("audit entry recorded", "entry_id", e.EntryID, "activity", activity)
	return e.EntryID, nil
}

// EvidenceExtraction records that count articles were obtained for query.
func (l *Logger) EvidenceExtraction(ctx context.Context, query string, count int, source string) (string, error) {
	return l.Record(ctx, ActivityEvidenceExtraction, map[string]any{
		"query":         query,
		"article_count": count,
		"source":        source,
	})
}

// EvidenceProcessing records a scored and synthesized batch.
func (l *Logger) EvidenceProcessing(ctx context.Context, processed, highQuality int, topic string) (string, error) {
	return l.Record(ctx, ActivityEvidenceProcessing, map[string]any{
		"articles_processed": processed,
		"high_quality_count": highQuality,
		"synthesis_topic":    topic,
	})
}

// PolicyGeneration records a generated draft.
func (l *Logger) PolicyGeneration(ctx context.Context, policyType, generator string, evidenceCount int, policyID string) (string, error) {
	return l.Record(ctx, ActivityPolicyGeneration, map[string]any{
		"policy_type":    policyType,
		"generator":      generator,
		"evidence_count": evidenceCount,
		"policy_id":      policyID,
	})
}

// ComplianceValidation records a validation verdict.
func (l *Logger) ComplianceValidation(ctx context.Context, policyID, status string, score float64, issues int) (string, error) {
	return l.Record(ctx, ActivityComplianceValidation, map[string]any{
		"policy_id":         policyID,
		"validation_status": status,
		"compliance_score":  score,
		"issues_count":      issues,
	})
}

// Decision records a decision with its rationale.
func (l *Logger) Decision(ctx context.Context, decisionType, decision, rationale string, supporting map[string]any) (string, error) {
	if supporting == nil {
		supporting = map[string]any{}
	}
	return l.Record(ctx, ActivityDecision, map[string]any{
		"decision_type":   decisionType,
		"decision":        decision,
		"rationale":       rationale,
		"supporting_data": supporting,
	})
}

// Export records a policy export.
func (l *Logger) Export(ctx context.Context, policyID, format, destination string) (string, error) {
	return l.Record(ctx, ActivityExport, map[string]any{
		"policy_id":     policyID,
		"export_format": format,
		"destination":   destination,
	})
}

// Trail returns the entries of sessionID, or of the current session when
// sessionID is empty.
func (l *Logger) Trail(ctx context.Context, sessionID string) ([]Entry, error) {
	if sessionID == "" {
		sessionID = l.sessionID
	}
	entries, err := l.sink.Entries(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("reading audit trail %s: %w", sessionID, err)
	}
	return entries, nil
}

// Report builds the report for sessionID, or for the current session when
// sessionID is empty.
func (l *Logger) Report(ctx context.Context, sessionID string) (Report, error) {
	if sessionID == "" {
		sessionID = l.sessionID
	}
	entries, err := l.Trail(ctx, sessionID)
	if err != nil {
		return Report{}, err
	}
	if len(entries) == 0 {
		l.logger.Warn("no audit entries for session", "requested", sessionID)
	}
	return BuildReport(sessionID, entries), nil
}
