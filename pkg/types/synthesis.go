// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// EvidenceSynthesis is the topic-level summary built from a batch of scored
// evidence. HighQualityCount + MediumQualityCount + LowQualityCount always
// equals TotalArticles.
type EvidenceSynthesis struct {
	// Topic is the label the synthesis was built for.
	Topic string `json:"topic" yaml:"topic"`

	TotalArticles      int `json:"total_articles" yaml:"total_articles"`
	HighQualityCount   int `json:"high_quality_count" yaml:"high_quality_count"`
	MediumQualityCount int `json:"medium_quality_count" yaml:"medium_quality_count"`
	LowQualityCount    int `json:"low_quality_count" yaml:"low_quality_count"`

	// KeyFindings holds the first ten findings in record encounter order.
	KeyFindings []string `json:"key_findings" yaml:"key_findings"`

	// EvidenceBase breaks the records down into exemplars.
	EvidenceBase EvidenceBase `json:"evidence_base" yaml:"evidence_base"`

	// Summary is a one or two sentence narrative.
	Summary string `json:"summary" yaml:"summary"`
}

// EvidenceBase lists the high-quality exemplars with their findings and the
// supporting (medium, then low quality) records by title and identifier.
type EvidenceBase struct {
	HighQuality []HighQualityEntry `json:"high_quality" yaml:"high_quality"`
	Supporting  []SupportingEntry  `json:"supporting_evidence" yaml:"supporting_evidence"`
}

// HighQualityEntry is one high-quality exemplar.
type HighQualityEntry struct {
	ID       string   `json:"pmid" yaml:"pmid"`
	Title    string   `json:"title" yaml:"title"`
	Findings []string `json:"findings" yaml:"findings"`
}

// SupportingEntry is one supporting record.
type SupportingEntry struct {
	ID    string `json:"pmid" yaml:"pmid"`
	Title string `json:"title" yaml:"title"`
}
