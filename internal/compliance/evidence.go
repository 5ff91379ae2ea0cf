// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"fmt"

	"github.com/pdiddy/policy-engine/pkg/types"
)

const (
	minEvidenceBase    = 5
	minHighQuality     = 3
	insufficientScore  = 0.3
	noEvidenceIssue    = "No evidence articles found."
	insufficientIssue  = "Insufficient high-quality evidence to support policy."
	noHighQualityWarn  = "No high-quality evidence found. Policy may lack strong support."
	limitedBaseWarnFmt = "Limited evidence base (%d articles). Consider expanding evidence search."
	fewHighWarnFmt     = "Only %d high-quality article(s) found. Consider seeking additional high-quality evidence."
)

// ValidateEvidenceQuality checks whether a synthesis supports a policy.
// The score is the share of high-quality articles.
func ValidateEvidenceQuality(s types.EvidenceSynthesis) types.EvidenceValidation {
	v := types.EvidenceValidation{
		Status:   types.CheckPass,
		Issues:   []string{},
		Warnings: []string{},
	}

	if s.TotalArticles <= 0 {
		v.Status = types.CheckFail
		v.Issues = append(v.Issues, noEvidenceIssue)
		return v
	}

	v.EvidenceQualityScore = float64(s.HighQualityCount) / float64(s.TotalArticles)

	if s.TotalArticles < minEvidenceBase {
		v.Warnings = append(v.Warnings, fmt.Sprintf(limitedBaseWarnFmt, s.TotalArticles))
	}
	switch {
	case s.HighQualityCount == 0:
		v.Warnings = append(v.Warnings, noHighQualityWarn)
	case s.HighQualityCount < minHighQuality:
		v.Warnings = append(v.Warnings, fmt.Sprintf(fewHighWarnFmt, s.HighQualityCount))
	}

	switch {
	case v.EvidenceQualityScore < insufficientScore && s.TotalArticles < minEvidenceBase:
		v.Status = types.CheckFail
		v.Issues = append(v.Issues, insufficientIssue)
	case len(v.Warnings) > 0:
		v.Status = types.CheckWarning
	}
	return v
}
