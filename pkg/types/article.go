// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the policy-engine pipeline:
// article records and their scored form, evidence syntheses, compliance
// frameworks and reports, policy drafts, and stage configuration.
//
// Field names in the json and yaml tags are stable; downstream collaborators
// (draft providers, exporters, audit sinks) match on them.
package types

import "strings"

// QualityTier is the coarse trustworthiness grade assigned to an evidence record.
type QualityTier string

const (
	QualityHigh   QualityTier = "high"
	QualityMedium QualityTier = "medium"
	QualityLow    QualityTier = "low"
)

// Rank orders tiers so that high > medium > low. Unknown tiers rank 0.
func (q QualityTier) Rank() int {
	switch q {
	case QualityHigh:
		return 3
	case QualityMedium:
		return 2
	case QualityLow:
		return 1
	}
	return 0
}

// Valid reports whether q is one of the three defined tiers.
func (q QualityTier) Valid() bool {
	return q.Rank() > 0
}

// ArticleRecord is one bibliographic record as supplied by a research-source
// client. Every field is optional on input; Normalize fills the defaults.
type ArticleRecord struct {
	// ID is the source identifier (a PubMed ID for PubMed records).
	ID string `json:"pmid" yaml:"pmid"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the free-text abstract, possibly with labelled sections
	// such as "RESULTS:" or "CONCLUSIONS:".
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PublicationDate is an ISO-like date, possibly partial ("2024", "2024-03").
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// Journal is the source venue name.
	Journal string `json:"journal" yaml:"journal"`

	// Keywords holds the record's keyword strings.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Normalize returns a copy with surrounding whitespace trimmed and nil slices
// replaced by empty ones, so later stages never special-case absent fields.
// Abstract is kept as supplied; its length is scored as is.
func (a ArticleRecord) Normalize() ArticleRecord {
	return ArticleRecord{
		ID:              strings.TrimSpace(a.ID),
		Title:           strings.TrimSpace(a.Title),
		Abstract:        a.Abstract,
		Authors:         nonEmpty(a.Authors),
		PublicationDate: strings.TrimSpace(a.PublicationDate),
		Journal:         strings.TrimSpace(a.Journal),
		Keywords:        nonEmpty(a.Keywords),
	}
}

// nonEmpty trims each entry and drops blanks. The result is never nil.
func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ScoredEvidence is an ArticleRecord with its assessed quality, relevance and
// extracted findings. It is created once per record and not mutated afterwards.
type ScoredEvidence struct {
	ArticleRecord `yaml:",inline"`

	// Quality is always one of high, medium, low.
	Quality QualityTier `json:"evidence_quality" yaml:"evidence_quality"`

	// Relevance is a score in [0, 1].
	Relevance float64 `json:"relevance_score" yaml:"relevance_score"`

	// Findings holds at most five sentences mined from the abstract.
	Findings []string `json:"key_findings" yaml:"key_findings"`
}
