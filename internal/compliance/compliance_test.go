// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/policy-engine/internal/metrics"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// completeDraft fills every default section and mentions one keyword of
// each default framework.
func completeDraft() types.PolicyDraft {
	components := map[string]string{}
	for _, fw := range DefaultFrameworks() {
		for _, s := range fw.RequiredSections {
			components[s] = "Text for " + s
		}
	}
	return types.PolicyDraft{
		Content: "Safety is monitored. Coverage applies when medically necessary. " +
			"HIPAA privacy rules apply. Care follows evidence-based practice.",
		Components: components,
	}
}

func TestDefaultFrameworksOrder(t *testing.T) {
	var names []string
	for _, fw := range DefaultFrameworks() {
		names = append(names, fw.Name)
	}
	assert.Equal(t, []string{"fda_guidelines", "cms_requirements", "hipaa_compliance", "clinical_standards"}, names)
	require.NoError(t, ValidateFrameworks(DefaultFrameworks()))
}

func TestEvaluateFrameworkMissingSections(t *testing.T) {
	fw := types.ComplianceFramework{
		Name:             "fda_guidelines",
		RequiredSections: []string{"policy_statement", "rationale", "evidence_base", "references"},
		Keywords:         []string{"safety"},
	}
	components := map[string]string{
		"policy_statement": "Covered.",
		"evidence_base":    "Three trials.",
	}

	r := EvaluateFramework(fw, "safety first", components)

	assert.Equal(t, 2, r.ChecksFailed)
	assert.Equal(t, 3, r.ChecksPassed)
	assert.Equal(t, []string{
		"Missing required section: rationale for fda_guidelines",
		"Missing required section: references for fda_guidelines",
	}, r.Issues)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, types.CheckFail, r.Status)
}

func TestEvaluateFrameworkSectionPresence(t *testing.T) {
	fw := types.ComplianceFramework{Name: "x", RequiredSections: []string{"privacy"}, Keywords: []string{"phi"}}

	tests := []struct {
		name       string
		components map[string]string
		passed     int
		failed     int
	}{
		{"absent", map[string]string{}, 1, 1},
		{"empty", map[string]string{"privacy": ""}, 1, 1},
		{"whitespace only is present", map[string]string{"privacy": "  \n\t"}, 2, 0},
		{"text", map[string]string{"privacy": "PHI is encrypted."}, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateFramework(fw, "phi", tt.components)
			assert.Equal(t, tt.passed, r.ChecksPassed)
			assert.Equal(t, tt.failed, r.ChecksFailed)
			assert.Equal(t, tt.failed > 0, r.Status == types.CheckFail)
		})
	}
}

func TestEvaluateFrameworkKeywordWarning(t *testing.T) {
	fw := DefaultFrameworks()[0]
	components := map[string]string{}
	for _, s := range fw.RequiredSections {
		components[s] = "present"
	}

	r := EvaluateFramework(fw, "nothing relevant here", components)

	assert.Equal(t, 4, r.ChecksPassed)
	assert.Zero(t, r.ChecksFailed)
	assert.Equal(t, []string{
		"No fda_guidelines keywords found in policy. Consider including: fda approved, clinical trial, safety",
	}, r.Warnings)
	assert.Equal(t, types.CheckWarning, r.Status)
}

func TestEvaluateFrameworkKeywordCaseInsensitive(t *testing.T) {
	fw := types.ComplianceFramework{Name: "hipaa", Keywords: []string{"Protected Health Information"}}
	r := EvaluateFramework(fw, "All PROTECTED health information is encrypted.", nil)
	assert.Equal(t, 1, r.ChecksPassed)
	assert.Equal(t, types.CheckPass, r.Status)
}

func TestEvaluateFrameworkWithoutKeywords(t *testing.T) {
	fw := types.ComplianceFramework{Name: "sections_only", RequiredSections: []string{"scope"}}
	r := EvaluateFramework(fw, "all members are covered", map[string]string{"scope": "All members."})
	assert.Equal(t, 1, r.ChecksPassed)
	assert.Zero(t, r.ChecksFailed)
	assert.Equal(t, []string{
		"No sections_only keywords found in policy. Consider including: ",
	}, r.Warnings)
	assert.Equal(t, types.CheckWarning, r.Status)
}

func TestAggregateScoreAndStatus(t *testing.T) {
	results := []types.FrameworkResult{
		{Framework: "a", Status: types.CheckFail, ChecksPassed: 9, ChecksFailed: 1, Issues: []string{"issue a"}},
		{Framework: "b", Status: types.CheckFail, ChecksPassed: 8, ChecksFailed: 2, Issues: []string{"issue b1", "issue b2"}},
	}

	r := Aggregate(results, fixedNow)

	assert.InDelta(t, 0.85, r.ComplianceScore, 1e-9)
	assert.Equal(t, types.StatusNeedsReview, r.OverallStatus)
	assert.Equal(t, []string{"a", "b"}, r.Frameworks)
	assert.Equal(t, []string{"issue a", "issue b1", "issue b2"}, r.Issues)
	assert.Len(t, r.FrameworkResults, 2)
	assert.Equal(t, "2026-06-01T12:00:00Z", r.ValidationTimestamp)
	assert.Equal(t, []string{recAddressIssues, recStrengthen}, r.Recommendations)
}

func TestAggregateStatusThresholds(t *testing.T) {
	tests := []struct {
		name           string
		passed, failed int
		want           types.ComplianceStatus
	}{
		{"all passed", 10, 0, types.StatusCompliant},
		{"exactly 0.9", 9, 1, types.StatusCompliant},
		{"just below 0.9", 89, 11, types.StatusNeedsReview},
		{"exactly 0.7", 7, 3, types.StatusNeedsReview},
		{"just below 0.7", 69, 31, types.StatusNonCompliant},
		{"nothing passed", 0, 5, types.StatusNonCompliant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Aggregate([]types.FrameworkResult{{Framework: "f", ChecksPassed: tt.passed, ChecksFailed: tt.failed}}, fixedNow)
			assert.Equal(t, tt.want, r.OverallStatus)
			assert.GreaterOrEqual(t, r.ComplianceScore, 0.0)
			assert.LessOrEqual(t, r.ComplianceScore, 1.0)
			assert.NotEmpty(t, r.Recommendations)
		})
	}
}

func TestAggregateNoChecks(t *testing.T) {
	r := Aggregate(nil, fixedNow)
	assert.Zero(t, r.ComplianceScore)
	assert.Equal(t, types.StatusNonCompliant, r.OverallStatus)
	assert.Equal(t, []string{"No compliance checks were evaluated."}, r.Issues)
	assert.Equal(t, []string{recAddressIssues, recRevise}, r.Recommendations)
}

func TestRecommendationOrder(t *testing.T) {
	results := []types.FrameworkResult{{
		Framework:    "fda_guidelines",
		ChecksPassed: 1,
		ChecksFailed: 3,
		Issues:       []string{"Missing required section: rationale for fda_guidelines"},
		Warnings:     []string{"some warning"},
	}}
	r := Aggregate(results, fixedNow)
	assert.Equal(t, []string{recAddressIssues, recAddSections, recReviewWarnings, recRevise}, r.Recommendations)
}

func TestRecommendationProceedWhenClean(t *testing.T) {
	r := Aggregate([]types.FrameworkResult{{Framework: "f", ChecksPassed: 4}}, fixedNow)
	assert.Equal(t, []string{"Policy meets compliance standards. Proceed with review and approval."}, r.Recommendations)
}

func TestValidatorCompleteDraft(t *testing.T) {
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)

	r := v.Validate(completeDraft())

	assert.InDelta(t, 1.0, r.ComplianceScore, 1e-9)
	assert.Equal(t, types.StatusCompliant, r.OverallStatus)
	assert.Empty(t, r.Issues)
	assert.Empty(t, r.Warnings)
	assert.Equal(t, []string{recProceed}, r.Recommendations)
	assert.Equal(t, v.Frameworks(), r.Frameworks)
	assert.Nil(t, r.EvidenceValidation)
}

func TestValidatorEmptyDraft(t *testing.T) {
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)

	r := v.Validate(types.PolicyDraft{})

	assert.Zero(t, r.ComplianceScore)
	assert.Equal(t, types.StatusNonCompliant, r.OverallStatus)
	assert.Len(t, r.Issues, 13)
	assert.Len(t, r.Warnings, 4)
	for name, fr := range r.FrameworkResults {
		assert.Equal(t, types.CheckFail, fr.Status, name)
	}
}

func TestValidatorIdempotent(t *testing.T) {
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)

	d := completeDraft()
	delete(d.Components, "privacy")
	assert.Equal(t, v.Validate(d), v.Validate(d))
}

func TestValidatorScoreIgnoresClock(t *testing.T) {
	d := completeDraft()
	delete(d.Components, "monitoring")

	v1, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)
	v2, err := NewValidator(DefaultFrameworks(), WithClock(func() time.Time { return fixedNow.AddDate(1, 0, 0) }))
	require.NoError(t, err)

	r1, r2 := v1.Validate(d), v2.Validate(d)
	assert.Equal(t, r1.ComplianceScore, r2.ComplianceScore)
	assert.Equal(t, r1.OverallStatus, r2.OverallStatus)
	assert.NotEqual(t, r1.ValidationTimestamp, r2.ValidationTimestamp)
}

func TestValidatorStatusMatchesFrameworkCounts(t *testing.T) {
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)

	d := completeDraft()
	delete(d.Components, "references")
	d.Content = "Coverage only."

	r := v.Validate(d)
	for name, fr := range r.FrameworkResults {
		switch {
		case fr.ChecksFailed > 0:
			assert.Equal(t, types.CheckFail, fr.Status, name)
		case len(fr.Warnings) > 0:
			assert.Equal(t, types.CheckWarning, fr.Status, name)
		default:
			assert.Equal(t, types.CheckPass, fr.Status, name)
		}
	}
}

func TestNewValidatorNoFrameworks(t *testing.T) {
	_, err := NewValidator(nil)
	assert.ErrorIs(t, err, ErrNoFrameworks)
}

func TestValidatorMetrics(t *testing.T) {
	m := metrics.New(types.MetricsConfig{})
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock), WithMetrics(m))
	require.NoError(t, err)

	v.Validate(completeDraft())

	n, err := testutil.GatherAndCount(m.Registry(), "policy_engine_compliance_validations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestValidateWithEvidence(t *testing.T) {
	v, err := NewValidator(DefaultFrameworks(), WithClock(fixedClock))
	require.NoError(t, err)

	plain := v.Validate(completeDraft())
	withEv := v.ValidateWithEvidence(completeDraft(), types.EvidenceSynthesis{})

	require.NotNil(t, withEv.EvidenceValidation)
	assert.Equal(t, types.CheckFail, withEv.EvidenceValidation.Status)
	assert.Equal(t, plain.ComplianceScore, withEv.ComplianceScore)
	assert.Equal(t, plain.OverallStatus, withEv.OverallStatus)
}

func TestValidateEvidenceQuality(t *testing.T) {
	tests := []struct {
		name         string
		total, high  int
		wantStatus   types.CheckStatus
		wantScore    float64
		wantIssues   []string
		wantWarnings []string
	}{
		{
			name:       "no articles",
			wantStatus: types.CheckFail,
			wantIssues: []string{"No evidence articles found."},
		},
		{
			name:       "small base without high quality",
			total:      3,
			wantStatus: types.CheckFail,
			wantIssues: []string{"Insufficient high-quality evidence to support policy."},
			wantWarnings: []string{
				"Limited evidence base (3 articles). Consider expanding evidence search.",
				"No high-quality evidence found. Policy may lack strong support.",
			},
		},
		{
			name:       "large base with one high quality",
			total:      10,
			high:       1,
			wantStatus: types.CheckWarning,
			wantScore:  0.1,
			wantWarnings: []string{
				"Only 1 high-quality article(s) found. Consider seeking additional high-quality evidence.",
			},
		},
		{
			name:       "small base with two high quality",
			total:      4,
			high:       2,
			wantStatus: types.CheckWarning,
			wantScore:  0.5,
			wantWarnings: []string{
				"Limited evidence base (4 articles). Consider expanding evidence search.",
				"Only 2 high-quality article(s) found. Consider seeking additional high-quality evidence.",
			},
		},
		{
			name:       "strong base",
			total:      10,
			high:       5,
			wantStatus: types.CheckPass,
			wantScore:  0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateEvidenceQuality(types.EvidenceSynthesis{TotalArticles: tt.total, HighQualityCount: tt.high})
			assert.Equal(t, tt.wantStatus, v.Status)
			assert.InDelta(t, tt.wantScore, v.EvidenceQualityScore, 1e-9)
			if tt.wantIssues == nil {
				assert.Empty(t, v.Issues)
			} else {
				assert.Equal(t, tt.wantIssues, v.Issues)
			}
			if tt.wantWarnings == nil {
				assert.Empty(t, v.Warnings)
			} else {
				assert.Equal(t, tt.wantWarnings, v.Warnings)
			}
		})
	}
}

func TestCheckAlignment(t *testing.T) {
	content := "This policy follows HIPAA and the 21st Century Cures Act."
	r := CheckAlignment(content, []string{"hipaa", "ACA", "21st century cures act", " "})
	assert.Equal(t, []string{"hipaa", "21st century cures act"}, r.Aligned)
	assert.Equal(t, []string{"ACA"}, r.NotAligned)
}

func TestLoadFrameworks(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		body    string
		wantErr error
		want    []string
	}{
		{
			name: "valid",
			body: "frameworks:\n" +
				"  - name: state_rules\n" +
				"    required_sections: [scope]\n" +
				"    keywords: [state law]\n" +
				"  - name: sections_only\n" +
				"    required_sections: [scope, appeals]\n",
			want: []string{"state_rules", "sections_only"},
		},
		{name: "empty", body: "frameworks: []\n", wantErr: ErrNoFrameworks},
		{name: "missing name", body: "frameworks:\n  - keywords: [x]\n", wantErr: ErrInvalidFramework},
		{name: "no rules", body: "frameworks:\n  - name: bare\n", wantErr: ErrInvalidFramework},
		{
			name:    "duplicate",
			body:    "frameworks:\n  - name: a\n    keywords: [x]\n  - name: a\n    keywords: [y]\n",
			wantErr: ErrDuplicateFramework,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			fws, err := LoadFrameworks(path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			var names []string
			for _, fw := range fws {
				names = append(names, fw.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestLoadFrameworksMissingFile(t *testing.T) {
	_, err := LoadFrameworks(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSelectFrameworks(t *testing.T) {
	got, err := SelectFrameworks(DefaultFrameworks(), []string{"hipaa_compliance", "fda_guidelines"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hipaa_compliance", got[0].Name)
	assert.Equal(t, "fda_guidelines", got[1].Name)

	all, err := SelectFrameworks(DefaultFrameworks(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = SelectFrameworks(DefaultFrameworks(), []string{"gdpr"})
	assert.ErrorIs(t, err, ErrUnknownFramework)
}

func TestFrameworksFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fw.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frameworks:\n  - name: local\n    keywords: [policy]\n"), 0o644))

	fws, err := FrameworksFromConfig(types.ComplianceConfig{FrameworksFile: path})
	require.NoError(t, err)
	require.Len(t, fws, 1)
	assert.Equal(t, "local", fws[0].Name)

	fws, err = FrameworksFromConfig(types.ComplianceConfig{Frameworks: []string{"cms_requirements"}})
	require.NoError(t, err)
	require.Len(t, fws, 1)
	assert.Equal(t, "cms_requirements", fws[0].Name)
}
