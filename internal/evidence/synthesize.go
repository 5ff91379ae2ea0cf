// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"fmt"
	"strings"

	"github.com/pdiddy/policy-engine/pkg/types"
)

const (
	maxKeyFindings = 10
	maxHighQuality = 5
	maxSupporting  = 10
	noEvidenceText = "No evidence available."
)

// Synthesize aggregates scored evidence into a topic summary. Every top-N
// list is truncated in input order; nothing is sorted by score. An empty
// input yields zero counts and the summary "No evidence available.".
func Synthesize(evidence []types.ScoredEvidence, topic string) types.EvidenceSynthesis {
	var high, medium, low []types.ScoredEvidence
	for _, e := range evidence {
		switch e.Quality {
		case types.QualityHigh:
			high = append(high, e)
		case types.QualityMedium:
			medium = append(medium, e)
		default:
			low = append(low, e)
		}
	}

	findings := []string{}
	for _, e := range evidence {
		for _, f := range e.Findings {
			if len(findings) == maxKeyFindings {
				break
			}
			findings = append(findings, f)
		}
	}

	base := types.EvidenceBase{
		HighQuality: []types.HighQualityEntry{},
		Supporting:  []types.SupportingEntry{},
	}
	for _, e := range high[:min(len(high), maxHighQuality)] {
		base.HighQuality = append(base.HighQuality, types.HighQualityEntry{
			ID:       e.ID,
			Title:    e.Title,
			Findings: append([]string{}, e.Findings...),
		})
	}
	for _, e := range append(append([]types.ScoredEvidence{}, medium...), low...) {
		if len(base.Supporting) == maxSupporting {
			break
		}
		base.Supporting = append(base.Supporting, types.SupportingEntry{ID: e.ID, Title: e.Title})
	}

	return types.EvidenceSynthesis{
		Topic:              topic,
		TotalArticles:      len(evidence),
		HighQualityCount:   len(high),
		MediumQualityCount: len(medium),
		LowQualityCount:    len(low),
		KeyFindings:        findings,
		EvidenceBase:       base,
		Summary:            summarize(len(evidence), len(high)),
	}
}

func summarize(total, high int) string {
	if total == 0 {
		return noEvidenceText
	}
	parts := []string{fmt.Sprintf("Analysis based on %d research articles.", total)}
	if high > 0 {
		parts = append(parts, fmt.Sprintf("High-quality evidence from %d studies supports the findings.", high))
	}
	return strings.Join(parts, " ")
}
