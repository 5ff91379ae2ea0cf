// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"strings"
	"time"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// Overall status thresholds on the compliance score.
const (
	compliantScore   = 0.9
	needsReviewScore = 0.7
)

const noChecksIssue = "No compliance checks were evaluated."

const (
	recAddressIssues   = "Address all identified issues to achieve compliance."
	recAddSections     = "Add all required policy sections as specified by regulatory frameworks."
	recReviewWarnings  = "Review warnings and consider incorporating suggested improvements."
	recRevise          = "Policy requires significant revision to meet compliance standards."
	recStrengthen      = "Policy meets basic requirements but could be strengthened."
	recProceed         = "Policy meets compliance standards. Proceed with review and approval."
	missingSectionText = "Missing required section"
)

// Aggregate folds per-framework results, given in evaluation order, into a
// ValidationReport stamped with now.
//
// The score is total passed checks over total checks, or 0 when there were
// no checks. Frameworks are not normalized: one with more required sections
// carries more checks and so more weight. A report with no checks at all
// carries an issue saying so.
func Aggregate(results []types.FrameworkResult, now time.Time) types.ValidationReport {
	report := types.ValidationReport{
		FrameworkResults:    make(map[string]types.FrameworkResult, len(results)),
		Frameworks:          make([]string, 0, len(results)),
		Issues:              []string{},
		Warnings:            []string{},
		ValidationTimestamp: now.UTC().Format(time.RFC3339),
	}

	var passed, failed int
	for _, r := range results {
		report.FrameworkResults[r.Framework] = r
		report.Frameworks = append(report.Frameworks, r.Framework)
		report.Issues = append(report.Issues, r.Issues...)
		report.Warnings = append(report.Warnings, r.Warnings...)
		passed += r.ChecksPassed
		failed += r.ChecksFailed
	}

	if total := passed + failed; total > 0 {
		report.ComplianceScore = float64(passed) / float64(total)
	} else {
		report.Issues = append(report.Issues, noChecksIssue)
	}

	report.OverallStatus = overallStatus(report.ComplianceScore)
	report.Recommendations = recommend(report)
	return report
}

func overallStatus(score float64) types.ComplianceStatus {
	switch {
	case score >= compliantScore:
		return types.StatusCompliant
	case score >= needsReviewScore:
		return types.StatusNeedsReview
	default:
		return types.StatusNonCompliant
	}
}

// recommend derives the recommendation list. It is never empty.
func recommend(r types.ValidationReport) []string {
	var recs []string
	if len(r.Issues) > 0 {
		recs = append(recs, recAddressIssues)
		for _, issue := range r.Issues {
			if strings.Contains(issue, missingSectionText) {
				recs = append(recs, recAddSections)
				break
			}
		}
	}
	if len(r.Warnings) > 0 {
		recs = append(recs, recReviewWarnings)
	}
	switch {
	case r.ComplianceScore < needsReviewScore:
		recs = append(recs, recRevise)
	case r.ComplianceScore < compliantScore:
		recs = append(recs, recStrengthen)
	}
	if len(recs) == 0 {
		recs = append(recs, recProceed)
	}
	return recs
}
