// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package evidence grades bibliographic records and synthesizes them into a
// topic-level evidence base.
//
// Each record is scored independently: a quality tier from recency,
// abstract completeness and authorship; a relevance score from study-design
// and significance phrases; and up to five finding sentences mined from the
// abstract. Scoring depends only on the record and the Scorer's clock, so
// records may be scored in any order or in parallel.
package evidence

import (
	"time"

	"github.com/pdiddy/policy-engine/internal/textmine"
	"github.com/pdiddy/policy-engine/pkg/types"
)

// Default phrase lists. Callers override any of them through
// types.LexiconConfig; an empty list keeps the default.
var (
	DefaultRigorPhrases = []string{
		"randomized controlled trial",
		"rct",
		"systematic review",
		"meta-analysis",
		"clinical trial",
	}

	DefaultSignificanceMarkers = []string{
		"p <",
		"p<",
		"statistically significant",
		"confidence interval",
	}

	DefaultFindingIndicators = []string{
		"showed",
		"demonstrated",
		"found",
		"revealed",
		"indicated",
		"suggests",
		"associated with",
		"resulted in",
		"significantly",
		"effective",
	}

	DefaultSectionLabels = []string{
		"BACKGROUND:",
		"OBJECTIVE:",
		"METHODS:",
		"RESULTS:",
		"CONCLUSION:",
		"CONCLUSIONS:",
	}
)

// sentenceTerminators split abstract blocks into sentences.
const sentenceTerminators = ".!?"

// Scorer assesses single records. The zero value is not usable; build one
// with NewScorer.
type Scorer struct {
	rigor        textmine.Lexicon
	significance textmine.Lexicon
	indicators   textmine.Lexicon
	sections     textmine.SectionSplitter

	// now supplies the reference time for recency scoring.
	now func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithClock fixes the reference time used for recency scoring.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// NewScorer builds a Scorer from the lexicon configuration.
func NewScorer(cfg types.LexiconConfig, opts ...Option) *Scorer {
	s := &Scorer{
		rigor:        textmine.NewLexicon(orDefault(cfg.RigorPhrases, DefaultRigorPhrases)...),
		significance: textmine.NewLexicon(orDefault(cfg.SignificanceMarkers, DefaultSignificanceMarkers)...),
		indicators:   textmine.NewLexicon(orDefault(cfg.FindingIndicators, DefaultFindingIndicators)...),
		sections:     textmine.NewSectionSplitter(orDefault(cfg.SectionLabels, DefaultSectionLabels)...),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score grades one record. The record is normalized first.
func (s *Scorer) Score(rec types.ArticleRecord) types.ScoredEvidence {
	rec = rec.Normalize()
	return types.ScoredEvidence{
		ArticleRecord: rec,
		Quality:       s.AssessQuality(rec),
		Relevance:     s.Relevance(rec),
		Findings:      s.ExtractFindings(rec.Abstract),
	}
}

func orDefault(list, def []string) []string {
	if len(list) == 0 {
		return def
	}
	return list
}
