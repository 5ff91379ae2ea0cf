// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ComplianceFramework is a named rule-set: document sections that must be
// present and non-empty, and keyword phrases of which at least one should
// appear in the document text.
type ComplianceFramework struct {
	Name             string   `json:"name" yaml:"name" mapstructure:"name"`
	RequiredSections []string `json:"required_sections" yaml:"required_sections" mapstructure:"required_sections"`
	Keywords         []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// CheckStatus is the outcome of one framework evaluation or of the
// evidence-quality validation.
type CheckStatus string

const (
	CheckPass    CheckStatus = "pass"
	CheckWarning CheckStatus = "warning"
	CheckFail    CheckStatus = "fail"
)

// ComplianceStatus is the overall verdict of a validation run.
type ComplianceStatus string

const (
	StatusCompliant    ComplianceStatus = "compliant"
	StatusNeedsReview  ComplianceStatus = "needs_review"
	StatusNonCompliant ComplianceStatus = "non_compliant"
)

// FrameworkResult is the outcome of evaluating one document against one
// framework. Status is fail iff ChecksFailed > 0, else warning iff any
// warning was raised, else pass.
type FrameworkResult struct {
	Framework    string      `json:"framework" yaml:"framework"`
	Status       CheckStatus `json:"status" yaml:"status"`
	Issues       []string    `json:"issues" yaml:"issues"`
	Warnings     []string    `json:"warnings" yaml:"warnings"`
	ChecksPassed int         `json:"checks_passed" yaml:"checks_passed"`
	ChecksFailed int         `json:"checks_failed" yaml:"checks_failed"`
}

// EvidenceValidation is the secondary check on an EvidenceSynthesis. It is
// reported next to, and never folded into, the compliance score.
type EvidenceValidation struct {
	Status               CheckStatus `json:"status" yaml:"status"`
	Issues               []string    `json:"issues" yaml:"issues"`
	Warnings             []string    `json:"warnings" yaml:"warnings"`
	EvidenceQualityScore float64     `json:"evidence_quality_score" yaml:"evidence_quality_score"`
}

// ValidationReport is the combined verdict over all frameworks.
type ValidationReport struct {
	OverallStatus    ComplianceStatus           `json:"overall_status" yaml:"overall_status"`
	ComplianceScore  float64                    `json:"compliance_score" yaml:"compliance_score"`
	FrameworkResults map[string]FrameworkResult `json:"framework_results" yaml:"framework_results"`

	// Frameworks records evaluation order; Issues and Warnings follow it.
	Frameworks []string `json:"frameworks" yaml:"frameworks"`

	Issues          []string `json:"issues" yaml:"issues"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`

	// ValidationTimestamp is an RFC 3339 timestamp. It never affects the score.
	ValidationTimestamp string `json:"validation_timestamp" yaml:"validation_timestamp"`

	// EvidenceValidation is attached by callers that also validated the
	// evidence base the document was drafted from.
	EvidenceValidation *EvidenceValidation `json:"evidence_validation,omitempty" yaml:"evidence_validation,omitempty"`
}

// AlignmentResult reports which named regulations a document mentions.
type AlignmentResult struct {
	Aligned    []string `json:"aligned" yaml:"aligned"`
	NotAligned []string `json:"not_aligned" yaml:"not_aligned"`
}
