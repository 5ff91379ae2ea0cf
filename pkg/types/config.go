// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LexiconConfig holds the phrase lists used by evidence scoring. An empty
// list means "use the built-in default".
type LexiconConfig struct {
	// RigorPhrases mark high-rigor study designs (title or abstract).
	RigorPhrases []string `json:"rigor_phrases" yaml:"rigor_phrases" mapstructure:"rigor_phrases"`

	// SignificanceMarkers mark reported statistical significance (abstract only).
	SignificanceMarkers []string `json:"significance_markers" yaml:"significance_markers" mapstructure:"significance_markers"`

	// FindingIndicators mark sentences that state a result.
	FindingIndicators []string `json:"finding_indicators" yaml:"finding_indicators" mapstructure:"finding_indicators"`

	// SectionLabels are the structural abstract labels, including the colon
	// (e.g. "RESULTS:").
	SectionLabels []string `json:"section_labels" yaml:"section_labels" mapstructure:"section_labels"`
}

// EvidenceConfig holds settings for the evidence stage.
type EvidenceConfig struct {
	Lexicon LexiconConfig `json:"lexicon" yaml:"lexicon" mapstructure:"lexicon"`

	// Workers bounds parallel per-record scoring (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// MinQuality drops records below this tier before synthesis. Empty keeps all.
	MinQuality QualityTier `json:"min_quality" yaml:"min_quality" mapstructure:"min_quality"`
}

// ComplianceConfig holds settings for the compliance stage.
type ComplianceConfig struct {
	// FrameworksFile is a YAML file of frameworks. Empty uses the built-in set.
	FrameworksFile string `json:"frameworks_file" yaml:"frameworks_file" mapstructure:"frameworks_file"`

	// Frameworks, when non-empty, restricts evaluation to these names, in this order.
	Frameworks []string `json:"frameworks" yaml:"frameworks" mapstructure:"frameworks"`
}

// DraftConfig holds settings for the draft stage.
type DraftConfig struct {
	// PolicyType selects the template (default clinical_policy).
	PolicyType PolicyType `json:"policy_type" yaml:"policy_type" mapstructure:"policy_type"`
}

// AuditBackend selects where audit entries are persisted.
type AuditBackend string

const (
	AuditMemory AuditBackend = "memory"
	AuditJSONL  AuditBackend = "jsonl"
	AuditSQLite AuditBackend = "sqlite"
)

// AuditConfig holds settings for the audit trail.
type AuditConfig struct {
	// Backend is memory, jsonl or sqlite (default jsonl).
	Backend AuditBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Dir is the directory for jsonl session files and the sqlite database.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ExportFormat selects a policy export format.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportYAML     ExportFormat = "yaml"
	ExportMarkdown ExportFormat = "markdown"
	ExportHTML     ExportFormat = "html"
)

// ExportConfig holds settings for exports.
type ExportConfig struct {
	// Dir is the export directory (default data/exports).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Package writes a full dashboard package at the end of a run.
	Package bool `json:"package" yaml:"package" mapstructure:"package"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// MetricsConfig holds metrics settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name (default policy_engine).
	Namespace string `json:"namespace" yaml:"namespace" mapstructure:"namespace"`

	// TextfilePath, when set, receives the metrics in Prometheus text format
	// at the end of a command.
	TextfilePath string `json:"textfile_path" yaml:"textfile_path" mapstructure:"textfile_path"`
}

// EngineConfig groups all stage configurations.
type EngineConfig struct {
	Evidence   EvidenceConfig   `json:"evidence" yaml:"evidence" mapstructure:"evidence"`
	Compliance ComplianceConfig `json:"compliance" yaml:"compliance" mapstructure:"compliance"`
	Draft      DraftConfig      `json:"draft" yaml:"draft" mapstructure:"draft"`
	Audit      AuditConfig      `json:"audit" yaml:"audit" mapstructure:"audit"`
	Export     ExportConfig     `json:"export" yaml:"export" mapstructure:"export"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}
