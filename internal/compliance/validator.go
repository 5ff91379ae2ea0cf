// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compliance evaluates policy drafts against configurable
// regulatory frameworks and validates the evidence base behind them.
//
// Each framework lists required document sections and keyword phrases.
// EvaluateFramework scores one framework, Aggregate folds the results into
// a ValidationReport, and Validator ties both together with a clock, a
// logger and metrics.
package compliance

import (
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/policy-engine/internal/metrics"
	"github.com/pdiddy/policy-engine/pkg/types"
)

// Validator evaluates drafts against a fixed, ordered set of frameworks.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	frameworks []types.ComplianceFramework
	now        func() time.Time
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithMetrics records every report in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(v *Validator) { v.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// NewValidator returns a Validator for frameworks, evaluated in the given
// order. It fails with ErrNoFrameworks when frameworks is empty.
func NewValidator(frameworks []types.ComplianceFramework, opts ...Option) (*Validator, error) {
	if err := ValidateFrameworks(frameworks); err != nil {
		return nil, err
	}
	v := &Validator{
		frameworks: append([]types.ComplianceFramework(nil), frameworks...),
		now:        time.Now,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.With("component", "compliance.validator")
	return v, nil
}

// FrameworksFromConfig resolves the framework set named by cfg: the file
// when one is given, else the built-in defaults, narrowed to cfg.Frameworks.
func FrameworksFromConfig(cfg types.ComplianceConfig) ([]types.ComplianceFramework, error) {
	all := DefaultFrameworks()
	if cfg.FrameworksFile != "" {
		loaded, err := LoadFrameworks(cfg.FrameworksFile)
		if err != nil {
			return nil, err
		}
		all = loaded
	}
	return SelectFrameworks(all, cfg.Frameworks)
}

// Frameworks returns the framework names in evaluation order.
func (v *Validator) Frameworks() []string {
	names := make([]string, len(v.frameworks))
	for i, fw := range v.frameworks {
		names[i] = fw.Name
	}
	return names
}

// Validate evaluates draft against every framework.
func (v *Validator) Validate(draft types.PolicyDraft) types.ValidationReport {
	content := strings.ToLower(draft.Content)
	results := make([]types.FrameworkResult, 0, len(v.frameworks))
	for _, fw := range v.frameworks {
		r := EvaluateFramework(fw, content, draft.Components)
		v.logger.Debug("framework evaluated",
			"framework", fw.Name, "status", r.Status,
			"passed", r.ChecksPassed, "failed", r.ChecksFailed)
		results = append(results, r)
	}

	report := Aggregate(results, v.now())
	v.metrics.ValidationCompleted(report)
	v.logger.Info("policy validated",
		"policy_id", draft.PolicyID(),
		"status", report.OverallStatus,
		"score", report.ComplianceScore,
		"issues", len(report.Issues),
		"warnings", len(report.Warnings))
	return report
}

// ValidateWithEvidence validates draft and attaches the evidence-quality
// validation of s. The evidence result does not change the compliance
// score or status.
func (v *Validator) ValidateWithEvidence(draft types.PolicyDraft, s types.EvidenceSynthesis) types.ValidationReport {
	report := v.Validate(draft)
	ev := ValidateEvidenceQuality(s)
	report.EvidenceValidation = &ev
	return report
}
