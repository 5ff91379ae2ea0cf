// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// Point thresholds for the quality rubric.
const (
	recentYears      = 3
	fairlyNewYears   = 5
	longAbstract     = 500
	mediumAbstract   = 200
	manyKeywords     = 5
	manyAuthors      = 5
	highTierPoints   = 5
	mediumTierPoints = 3
)

// AssessQuality scores recency, abstract length in characters, keyword
// count and author count, and maps the total onto a tier. A date whose year cannot be parsed
// contributes nothing; it is never an error.
func (s *Scorer) AssessQuality(rec types.ArticleRecord) types.QualityTier {
	score := s.recencyPoints(rec.PublicationDate)

	switch n := utf8.RuneCountInString(rec.Abstract); {
	case n > longAbstract:
		score += 2
	case n > mediumAbstract:
		score++
	}

	if len(rec.Keywords) >= manyKeywords {
		score++
	}
	if len(rec.Authors) >= manyAuthors {
		score++
	}

	switch {
	case score >= highTierPoints:
		return types.QualityHigh
	case score >= mediumTierPoints:
		return types.QualityMedium
	default:
		return types.QualityLow
	}
}

func (s *Scorer) recencyPoints(date string) int {
	year, ok := publicationYear(date)
	if !ok {
		return 0
	}
	age := s.now().Year() - year
	switch {
	case age <= recentYears:
		return 2
	case age <= fairlyNewYears:
		return 1
	}
	return 0
}

// publicationYear reads the year from the segment before the first '-'
// ("2024-03-01", "2024-03", "2024").
func publicationYear(date string) (int, bool) {
	head, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return year, true
}
