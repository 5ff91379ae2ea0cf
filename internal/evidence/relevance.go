// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import "github.com/pdiddy/policy-engine/pkg/types"

const (
	baseRelevance     = 0.5
	rigorBonus        = 0.3
	significanceBonus = 0.2
	maxRelevance      = 1.0
)

// Relevance returns a score in [0.5, 1.0]: a base of 0.5, plus 0.3 when the
// title or abstract names a high-rigor design, plus 0.2 when the abstract
// reports statistical significance.
func (s *Scorer) Relevance(rec types.ArticleRecord) float64 {
	score := baseRelevance
	if s.rigor.MatchAny(rec.Title) || s.rigor.MatchAny(rec.Abstract) {
		score += rigorBonus
	}
	if s.significance.MatchAny(rec.Abstract) {
		score += significanceBonus
	}
	if score > maxRelevance {
		score = maxRelevance
	}
	return score
}
