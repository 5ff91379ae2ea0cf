// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/policy-engine/internal/textmine"
)

const (
	// minBlockLen is the trimmed length in characters a section block must
	// exceed to be mined.
	minBlockLen = 50

	// maxFindings caps the findings kept per record.
	maxFindings = 5
)

// ExtractFindings splits the abstract at its section labels, skips blocks of
// 50 characters or fewer, and returns up to five sentences that contain a
// finding indicator, in source order. An empty abstract yields an empty,
// non-nil list.
func (s *Scorer) ExtractFindings(abstract string) []string {
	findings := []string{}
	if strings.TrimSpace(abstract) == "" {
		return findings
	}

	for _, block := range s.sections.Split(abstract) {
		if utf8.RuneCountInString(strings.TrimSpace(block)) <= minBlockLen {
			continue
		}
		for _, sentence := range textmine.SplitSentences(block, sentenceTerminators) {
			if !s.indicators.MatchAny(sentence) {
				continue
			}
			findings = append(findings, sentence)
			if len(findings) == maxFindings {
				return findings
			}
		}
	}
	return findings
}
