// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/policy-engine/internal/audit"
	"github.com/pdiddy/policy-engine/internal/compliance"
	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/internal/export"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var fixedNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testEngine(t *testing.T, opts ...Option) (*Engine, *audit.Logger) {
	t.Helper()
	scorer := evidence.NewScorer(types.LexiconConfig{}, evidence.WithClock(clock))
	proc := evidence.NewProcessor(scorer, types.EvidenceConfig{Workers: 2}, nil, nil)
	gen := draft.NewGenerator(draft.WithClock(clock))
	val, err := compliance.NewValidator(compliance.DefaultFrameworks(), compliance.WithClock(clock))
	require.NoError(t, err)
	al := audit.NewLogger(audit.NewMemorySink(), audit.WithClock(clock))
	return New(proc, gen, val, al, opts...), al
}

func authors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Author %d", i)
	}
	return out
}

func testRecords() []types.ArticleRecord {
	return []types.ArticleRecord{
		{
			ID:              "1",
			Title:           "Randomized controlled trial of cardiac rehabilitation",
			Abstract:        "RESULTS: " + strings.Repeat("Exercise capacity improved significantly in the treated group. ", 10),
			Authors:         authors(6),
			PublicationDate: "2025-03-01",
			Keywords:        []string{"a", "b", "c", "d", "e"},
		},
		{
			ID:              "2",
			Title:           "Cohort follow-up",
			Abstract:        strings.Repeat("x", 250),
			Authors:         authors(2),
			PublicationDate: "2025",
		},
		{ID: "3", Title: "Letter", Abstract: "Short", Authors: authors(1)},
	}
}

func activities(t *testing.T, al *audit.Logger) []audit.ActivityType {
	t.Helper()
	entries, err := al.Trail(context.Background(), "")
	require.NoError(t, err)
	out := make([]audit.ActivityType, len(entries))
	for i, e := range entries {
		out[i] = e.ActivityType
	}
	return out
}

func TestRun(t *testing.T) {
	e, al := testEngine(t)

	res, err := e.Run(context.Background(), " Cardiac rehabilitation ", testRecords(), types.PolicyClinical)
	require.NoError(t, err)

	assert.Equal(t, "Cardiac rehabilitation", res.Topic)
	assert.Equal(t, 3, res.Synthesis.TotalArticles)
	assert.Equal(t, 1, res.Synthesis.HighQualityCount)
	assert.Equal(t, Summary{
		ArticlesFound:       3,
		ArticlesScored:      3,
		HighQualityEvidence: 1,
		PolicyID:            "POL-20260601-001",
		ComplianceStatus:    res.Report.OverallStatus,
		ComplianceScore:     res.Report.ComplianceScore,
	}, res.Summary)

	require.NotNil(t, res.Report.EvidenceValidation)
	assert.Equal(t, types.CheckWarning, res.Report.EvidenceValidation.Status)
	assert.Empty(t, res.ExportDir)

	assert.Equal(t, []audit.ActivityType{
		audit.ActivityEvidenceExtraction,
		audit.ActivityEvidenceProcessing,
		audit.ActivityPolicyGeneration,
		audit.ActivityComplianceValidation,
	}, activities(t, al))
	assert.Equal(t, 4, res.AuditReport.TotalActivities)
}

func TestRunWithExporter(t *testing.T) {
	exp, err := export.NewExporter(types.ExportConfig{Dir: filepath.Join(t.TempDir(), "exports")},
		export.WithClock(clock))
	require.NoError(t, err)
	e, al := testEngine(t, WithExporter(exp))

	res, err := e.Run(context.Background(), "Cardiac rehabilitation", testRecords(), types.PolicyCoverage)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(exp.Dir(), "POL-20260601-001_package"), res.ExportDir)
	assert.FileExists(t, filepath.Join(res.ExportDir, export.SummaryFile))
	assert.Equal(t, types.PolicyCoverage, res.Draft.PolicyType)

	acts := activities(t, al)
	require.Len(t, acts, 5)
	assert.Equal(t, audit.ActivityExport, acts[4])
	assert.Equal(t, 4, res.AuditReport.TotalActivities)
}

func TestRunNoRecords(t *testing.T) {
	e, al := testEngine(t)

	_, err := e.Run(context.Background(), "Rare condition", nil, types.PolicyClinical)
	assert.ErrorIs(t, err, ErrNoRecords)

	entries, err := al.Trail(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActivityEvidenceExtraction, entries[0].ActivityType)
	assert.EqualValues(t, 0, entries[0].Details["article_count"])
}

func TestRunEmptyTopic(t *testing.T) {
	e, al := testEngine(t)

	_, err := e.Run(context.Background(), "   ", testRecords(), types.PolicyClinical)
	assert.ErrorIs(t, err, ErrEmptyTopic)
	assert.Empty(t, activities(t, al))
}

func TestRunCancelled(t *testing.T) {
	e, _ := testEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, "Cardiac rehabilitation", testRecords(), types.PolicyClinical)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMinQuality(t *testing.T) {
	e, _ := testEngine(t, WithMinQuality(types.QualityHigh))

	res, err := e.Run(context.Background(), "Cardiac rehabilitation", testRecords(), types.PolicyClinical)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synthesis.TotalArticles)
	assert.Equal(t, 3, res.Summary.ArticlesScored)
}

func TestRunUnknownPolicyType(t *testing.T) {
	e, _ := testEngine(t)
	_, err := e.Run(context.Background(), "Cardiac rehabilitation", testRecords(), "formulary")
	assert.ErrorIs(t, err, draft.ErrUnknownPolicyType)
}

func TestFromSynthesis(t *testing.T) {
	e, al := testEngine(t)
	s := types.EvidenceSynthesis{Topic: "Asthma", TotalArticles: 6, HighQualityCount: 3}

	d, report, err := e.FromSynthesis(context.Background(), s, types.PolicyClinical)
	require.NoError(t, err)
	assert.Contains(t, d.Components["title"], "Asthma")
	require.NotNil(t, report.EvidenceValidation)
	assert.Equal(t, types.CheckPass, report.EvidenceValidation.Status)
	assert.Equal(t, []audit.ActivityType{
		audit.ActivityPolicyGeneration,
		audit.ActivityComplianceValidation,
	}, activities(t, al))
}

func TestValidateDraft(t *testing.T) {
	e, al := testEngine(t)

	report, err := e.ValidateDraft(context.Background(), types.PolicyDraft{})
	require.NoError(t, err)
	assert.Equal(t, types.StatusNonCompliant, report.OverallStatus)
	assert.Nil(t, report.EvidenceValidation)
	assert.Equal(t, []audit.ActivityType{audit.ActivityComplianceValidation}, activities(t, al))
}
