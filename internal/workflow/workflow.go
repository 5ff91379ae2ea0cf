// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workflow runs the full pipeline for one topic: score and
// synthesize evidence, draft a policy, validate it, audit each stage and
// optionally export a dashboard package.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/policy-engine/internal/audit"
	"github.com/pdiddy/policy-engine/internal/compliance"
	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/internal/export"
	"github.com/pdiddy/policy-engine/pkg/types"
)

// Workflow errors.
var (
	ErrEmptyTopic = errors.New("topic must not be empty")
	ErrNoRecords  = errors.New("no article records for topic")
)

const (
	defaultSource       = "file"
	packageExportFormat = "package"
)

// Summary holds the headline numbers of a run.
type Summary struct {
	ArticlesFound       int                    `json:"articles_found"`
	ArticlesScored      int                    `json:"articles_scored"`
	ArticlesFailed      int                    `json:"articles_failed"`
	HighQualityEvidence int                    `json:"high_quality_evidence"`
	PolicyID            string                 `json:"policy_id"`
	ComplianceStatus    types.ComplianceStatus `json:"compliance_status"`
	ComplianceScore     float64                `json:"compliance_score"`
}

// Result is everything a run produced.
type Result struct {
	Topic       string                  `json:"topic"`
	Synthesis   types.EvidenceSynthesis `json:"synthesis"`
	Draft       types.PolicyDraft       `json:"policy_draft"`
	Report      types.ValidationReport  `json:"validation_results"`
	AuditReport audit.Report            `json:"audit_report"`
	ExportDir   string                  `json:"export_location,omitempty"`
	Summary     Summary                 `json:"summary"`
}

// Engine wires the pipeline stages together.
type Engine struct {
	processor  *evidence.Processor
	generator  *draft.Generator
	validator  *compliance.Validator
	audit      *audit.Logger
	exporter   *export.Exporter
	minQuality types.QualityTier
	source     string
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithExporter writes a dashboard package at the end of each run.
func WithExporter(e *export.Exporter) Option {
	return func(en *Engine) { en.exporter = e }
}

// WithMinQuality drops scored records below q before synthesis.
func WithMinQuality(q types.QualityTier) Option {
	return func(en *Engine) { en.minQuality = q }
}

// WithSource names where the records came from in the audit trail.
func WithSource(s string) Option {
	return func(en *Engine) { en.source = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(en *Engine) { en.logger = l }
}

// New returns an Engine. All four stages are required.
func New(p *evidence.Processor, g *draft.Generator, v *compliance.Validator, a *audit.Logger, opts ...Option) *Engine {
	e := &Engine{
		processor: p,
		generator: g,
		validator: v,
		audit:     a,
		source:    defaultSource,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "workflow")
	return e
}

// Run executes the pipeline for topic over records. The extraction event
// is audited even when records is empty, in which case ErrNoRecords is
// returned. Cancellation is checked between stages.
func (e *Engine) Run(ctx context.Context, topic string, records []types.ArticleRecord, policyType types.PolicyType) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Result{}, ErrEmptyTopic
	}
	e.logger.Info("starting workflow", "topic", topic, "records", len(records))

	if _, err := e.audit.EvidenceExtraction(ctx, topic, len(records), e.source); err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrNoRecords, topic)
	}

	scored, ps, err := e.processor.Process(ctx, records)
	if err != nil {
		return Result{}, err
	}
	if e.minQuality != "" {
		if scored, err = evidence.FilterByQuality(scored, e.minQuality); err != nil {
			return Result{}, err
		}
	}
	synthesis := evidence.Synthesize(scored, topic)
	if _, err := e.audit.EvidenceProcessing(ctx, ps.Processed, synthesis.HighQualityCount, topic); err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	d, report, err := e.draftAndValidate(ctx, synthesis, policyType, len(records))
	if err != nil {
		return Result{}, err
	}

	auditReport, err := e.audit.Report(ctx, "")
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Topic:       topic,
		Synthesis:   synthesis,
		Draft:       d,
		Report:      report,
		AuditReport: auditReport,
		Summary: Summary{
			ArticlesFound:       len(records),
			ArticlesScored:      ps.Processed,
			ArticlesFailed:      ps.Failed,
			HighQualityEvidence: synthesis.HighQualityCount,
			PolicyID:            d.PolicyID(),
			ComplianceStatus:    report.OverallStatus,
			ComplianceScore:     report.ComplianceScore,
		},
	}

	if e.exporter != nil {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		dir, err := e.exporter.Package(d, report, auditReport)
		if err != nil {
			return Result{}, fmt.Errorf("exporting package: %w", err)
		}
		if _, err := e.audit.Export(ctx, d.PolicyID(), packageExportFormat, dir); err != nil {
			return Result{}, err
		}
		res.ExportDir = dir
	}

	e.logger.Info("workflow completed",
		"policy_id", res.Summary.PolicyID,
		"status", res.Summary.ComplianceStatus,
		"score", res.Summary.ComplianceScore)
	return res, nil
}

// FromSynthesis drafts and validates a policy from an existing synthesis.
func (e *Engine) FromSynthesis(ctx context.Context, s types.EvidenceSynthesis, policyType types.PolicyType) (types.PolicyDraft, types.ValidationReport, error) {
	return e.draftAndValidate(ctx, s, policyType, s.TotalArticles)
}

// ValidateDraft validates an existing draft and audits the verdict.
func (e *Engine) ValidateDraft(ctx context.Context, d types.PolicyDraft) (types.ValidationReport, error) {
	report := e.validator.Validate(d)
	if _, err := e.audit.ComplianceValidation(ctx, d.PolicyID(), string(report.OverallStatus),
		report.ComplianceScore, len(report.Issues)); err != nil {
		return types.ValidationReport{}, err
	}
	return report, nil
}

func (e *Engine) draftAndValidate(ctx context.Context, s types.EvidenceSynthesis, policyType types.PolicyType, evidenceCount int) (types.PolicyDraft, types.ValidationReport, error) {
	d, err := e.generator.Generate(s, policyType)
	if err != nil {
		return types.PolicyDraft{}, types.ValidationReport{}, fmt.Errorf("drafting policy: %w", err)
	}
	if _, err := e.audit.PolicyGeneration(ctx, string(d.PolicyType), d.Metadata.Generator, evidenceCount, d.PolicyID()); err != nil {
		return types.PolicyDraft{}, types.ValidationReport{}, err
	}

	if err := ctx.Err(); err != nil {
		return types.PolicyDraft{}, types.ValidationReport{}, err
	}
	report := e.validator.ValidateWithEvidence(d, s)
	if _, err := e.audit.ComplianceValidation(ctx, d.PolicyID(), string(report.OverallStatus),
		report.ComplianceScore, len(report.Issues)); err != nil {
		return types.PolicyDraft{}, types.ValidationReport{}, err
	}
	return d, report, nil
}
