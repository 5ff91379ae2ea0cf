// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textmine provides the small text-mining primitives the evidence
// stage is built from: a case-insensitive phrase lexicon, a splitter for
// labelled abstract sections, and a sentence splitter. The phrase lists are
// data supplied by the caller; nothing here knows about study designs or
// findings.
package textmine

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon is an ordered set of lower-cased phrases matched as substrings.
type Lexicon struct {
	terms []string
}

// NewLexicon builds a lexicon from terms. Terms are lower-cased; blanks and
// duplicates are dropped, first occurrence wins.
func NewLexicon(terms ...string) Lexicon {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return Lexicon{terms: out}
}

// Terms returns a copy of the lexicon's phrases in order.
func (l Lexicon) Terms() []string {
	return append([]string(nil), l.terms...)
}

// Len returns the number of phrases.
func (l Lexicon) Len() int { return len(l.terms) }

// MatchAny reports whether text contains any phrase, ignoring case.
func (l Lexicon) MatchAny(text string) bool {
	return l.matchLower(strings.ToLower(text))
}

// Matches returns the phrases that occur in text, in lexicon order.
func (l Lexicon) Matches(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, t := range l.terms {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

func (l Lexicon) matchLower(lower string) bool {
	for _, t := range l.terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// SectionSplitter cuts text at structural labels such as "RESULTS:".
type SectionSplitter struct {
	re *regexp.Regexp
}

// NewSectionSplitter builds a splitter for the given labels, matched
// case-insensitively. Longer labels are tried first so that "CONCLUSIONS:"
// is never cut short by "CONCLUSION". With no labels, Split returns the
// whole text as one block.
func NewSectionSplitter(labels ...string) SectionSplitter {
	quoted := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			quoted = append(quoted, regexp.QuoteMeta(l))
		}
	}
	if len(quoted) == 0 {
		return SectionSplitter{}
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return SectionSplitter{re: regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)}
}

// Split returns the blocks between labels, labels removed, in source order.
// Blocks are returned untrimmed, and may be empty.
func (s SectionSplitter) Split(text string) []string {
	if s.re == nil {
		return []string{text}
	}
	return s.re.Split(text, -1)
}

// SplitSentences cuts text at every terminal rune in terminators and returns
// the trimmed, non-empty pieces. Decimal points are terminators too; callers
// that need numeric-aware splitting must pre-process the text.
func SplitSentences(text, terminators string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(terminators, r)
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
