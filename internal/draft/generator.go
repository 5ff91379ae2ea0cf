// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft renders policy drafts from an evidence synthesis.
//
// Each policy type has a component builder and a text/template. The
// components map holds every section by key so the compliance engine can
// check sections directly; Content is the rendered document.
package draft

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// ErrUnknownPolicyType is returned for a policy type with no template.
var ErrUnknownPolicyType = errors.New("unknown policy type")

const (
	generatorName  = "policy-engine/template"
	dateLayout     = "2006-01-02"
	reviewInterval = 365 * 24 * time.Hour
)

// Generator renders drafts. It is safe for concurrent use.
type Generator struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for dates, policy numbers and metadata.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a Generator using the wall clock and slog.Default
// unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With("component", "draft.generator")
	return g
}

// PolicyTypes lists the supported policy types.
func PolicyTypes() []types.PolicyType {
	return []types.PolicyType{types.PolicyClinical, types.PolicyCoverage}
}

// Generate builds the components for policyType from s and renders them.
// An empty policyType means clinical_policy.
func (g *Generator) Generate(s types.EvidenceSynthesis, policyType types.PolicyType) (types.PolicyDraft, error) {
	if policyType == "" {
		policyType = types.PolicyClinical
	}
	tmpl, ok := templates[policyType]
	if !ok {
		return types.PolicyDraft{}, fmt.Errorf("%w: %q", ErrUnknownPolicyType, policyType)
	}

	now := g.now()
	components := baseComponents(s, now)
	switch policyType {
	case types.PolicyClinical:
		components["policy_statement"] = policyStatement(s)
		components["rationale"] = rationale(s)
		components["evidence_base"] = evidenceBase(s)
		components["clinical_guidelines"] = clinicalGuidelines
		components["compliance_requirements"] = complianceRequirements
	case types.PolicyCoverage:
		components["overview"] = overview(s)
		components["coverage_criteria"] = coverageCriteria(s)
		components["evidence_summary"] = evidenceSummary(s)
		components["regulatory_alignment"] = regulatoryAlignment
		components["implementation"] = coverageImplementation
	}

	content, err := render(tmpl, components)
	if err != nil {
		return types.PolicyDraft{}, fmt.Errorf("rendering %s: %w", policyType, err)
	}

	d := types.PolicyDraft{
		PolicyType: policyType,
		Content:    content,
		Components: components,
		Metadata: types.DraftMetadata{
			GeneratedAt:         now.Format(time.RFC3339),
			Generator:           generatorName,
			EvidenceCount:       s.TotalArticles,
			HighQualityEvidence: s.HighQualityCount,
		},
	}
	g.logger.Info("policy draft generated",
		"policy_type", policyType, "policy_id", d.PolicyID(), "evidence_count", s.TotalArticles)
	return d, nil
}

// Revise returns a copy of d annotated with the revision feedback and
// time. d itself is not modified.
func (g *Generator) Revise(d types.PolicyDraft, feedback []string) types.PolicyDraft {
	revised := d
	revised.Components = maps.Clone(d.Components)
	revised.Metadata.RevisedAt = g.now().Format(time.RFC3339)
	revised.Metadata.RevisionFeedback = slices.Clone(feedback)
	g.logger.Info("policy draft revised", "policy_id", d.PolicyID(), "feedback", len(feedback))
	return revised
}

func baseComponents(s types.EvidenceSynthesis, now time.Time) map[string]string {
	return map[string]string{
		"title":            title(s),
		"policy_number":    fmt.Sprintf("POL-%s-001", now.Format("20060102")),
		"effective_date":   now.Format(dateLayout),
		"review_date":      now.Format(dateLayout),
		"next_review_date": now.Add(reviewInterval).Format(dateLayout),
		"references":       references(s),
	}
}
