// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes policy drafts and validation results to disk in
// the formats a review dashboard consumes.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/policy-engine/internal/audit"
	"github.com/pdiddy/policy-engine/pkg/types"
)

const defaultDir = "data/exports"

// Package file names.
const (
	PolicyJSONFile     = "policy.json"
	PolicyMarkdownFile = "policy.md"
	PolicyHTMLFile     = "policy.html"
	ValidationFile     = "validation.json"
	AuditReportFile    = "audit_report.json"
	SummaryFile        = "summary.json"
)

// Summary is the index file of a package.
type Summary struct {
	PolicyID       string            `json:"policy_id"`
	PackageCreated string            `json:"package_created"`
	Files          map[string]string `json:"files"`
	PolicyType     types.PolicyType  `json:"policy_type"`
	OverallStatus  string            `json:"validation_status"`
	Score          float64           `json:"compliance_score"`
	Issues         int               `json:"issues"`
	Warnings       int               `json:"warnings"`
}

// Exporter writes into one directory.
type Exporter struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock sets the clock used for fallback policy IDs and package times.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// NewExporter creates the export directory (default data/exports).
func NewExporter(cfg types.ExportConfig, opts ...Option) (*Exporter, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	e := &Exporter{dir: dir, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "export")
	return e, nil
}

// Dir returns the export directory.
func (e *Exporter) Dir() string { return e.dir }

// PolicyID returns the draft's policy number, or policy_YYYYMMDDHHMMSS
// when the draft has none.
func (e *Exporter) PolicyID(d types.PolicyDraft) string {
	if id := d.PolicyID(); id != "" {
		return id
	}
	return "policy_" + e.now().Format("20060102150405")
}

// Export writes d to <dir>/<policy_id>.<ext> and returns the path.
func (e *Exporter) Export(d types.PolicyDraft, f types.ExportFormat) (string, error) {
	ext, err := Extension(f)
	if err != nil {
		return "", err
	}
	id := e.PolicyID(d)
	data, err := Render(d, id, f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.dir, id+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	e.logger.Info("policy exported", "policy_id", id, "format", f, "path", path)
	return path, nil
}

// Package writes a dashboard package to <dir>/<policy_id>_package: the
// draft as JSON, Markdown and HTML, the validation report, the audit
// report and a summary index. It returns the package directory.
func (e *Exporter) Package(d types.PolicyDraft, report types.ValidationReport, auditReport audit.Report) (string, error) {
	id := e.PolicyID(d)
	dir := filepath.Join(e.dir, id+"_package")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating package directory: %w", err)
	}

	files := []struct {
		name   string
		format types.ExportFormat
	}{
		{PolicyJSONFile, types.ExportJSON},
		{PolicyMarkdownFile, types.ExportMarkdown},
		{PolicyHTMLFile, types.ExportHTML},
	}
	for _, f := range files {
		data, err := Render(d, id, f.format)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), data, 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", f.name, err)
		}
	}

	if err := writeJSON(filepath.Join(dir, ValidationFile), report); err != nil {
		return "", err
	}
	if err := audit.WriteReport(filepath.Join(dir, AuditReportFile), auditReport); err != nil {
		return "", err
	}

	summary := Summary{
		PolicyID:       id,
		PackageCreated: e.now().Format(time.RFC3339),
		Files: map[string]string{
			"policy_json":     PolicyJSONFile,
			"policy_markdown": PolicyMarkdownFile,
			"policy_html":     PolicyHTMLFile,
			"validation":      ValidationFile,
			"audit_report":    AuditReportFile,
		},
		PolicyType:    d.PolicyType,
		OverallStatus: string(report.OverallStatus),
		Score:         report.ComplianceScore,
		Issues:        len(report.Issues),
		Warnings:      len(report.Warnings),
	}
	if err := writeJSON(filepath.Join(dir, SummaryFile), summary); err != nil {
		return "", err
	}

	e.logger.Info("dashboard package created", "policy_id", id, "dir", dir)
	return dir, nil
}

// WriteValidation writes report to <dir>/<policy_id>_validation.json.
func (e *Exporter) WriteValidation(policyID string, report types.ValidationReport) (string, error) {
	path := filepath.Join(e.dir, policyID+"_validation.json")
	if err := writeJSON(path, report); err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
