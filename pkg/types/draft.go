// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PolicyType names a draft template.
type PolicyType string

const (
	PolicyClinical PolicyType = "clinical_policy"
	PolicyCoverage PolicyType = "coverage_policy"
)

// PolicyDraft is the document handed from the draft-content provider to the
// compliance engine. The engine reads only Content and Components.
type PolicyDraft struct {
	// PolicyType is the template the draft was rendered from.
	PolicyType PolicyType `json:"policy_type" yaml:"policy_type"`

	// Content is the full rendered document text.
	Content string `json:"content" yaml:"content"`

	// Components maps section keys (e.g. "policy_statement") to their text.
	Components map[string]string `json:"components" yaml:"components"`

	// Metadata carries generation details.
	Metadata DraftMetadata `json:"metadata" yaml:"metadata"`
}

// PolicyID returns the draft's policy number, or "" when it has none.
func (d PolicyDraft) PolicyID() string {
	return d.Components["policy_number"]
}

// DraftMetadata records how and from what a draft was produced.
type DraftMetadata struct {
	GeneratedAt         string   `json:"generated_at" yaml:"generated_at"`
	Generator           string   `json:"generator" yaml:"generator"`
	EvidenceCount       int      `json:"evidence_count" yaml:"evidence_count"`
	HighQualityEvidence int      `json:"high_quality_evidence" yaml:"high_quality_evidence"`
	RevisedAt           string   `json:"revised_at,omitempty" yaml:"revised_at,omitempty"`
	RevisionFeedback    []string `json:"revision_feedback,omitempty" yaml:"revision_feedback,omitempty"`
}
