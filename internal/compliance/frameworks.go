// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// Framework configuration errors.
var (
	ErrNoFrameworks       = errors.New("no compliance frameworks configured")
	ErrInvalidFramework   = errors.New("invalid compliance framework")
	ErrUnknownFramework   = errors.New("unknown compliance framework")
	ErrDuplicateFramework = errors.New("duplicate compliance framework")
)

// DefaultFrameworks returns the built-in rule-sets in evaluation order.
func DefaultFrameworks() []types.ComplianceFramework {
	return []types.ComplianceFramework{
		{
			Name:             "fda_guidelines",
			RequiredSections: []string{"policy_statement", "rationale", "evidence_base", "references"},
			Keywords:         []string{"fda approved", "clinical trial", "safety", "efficacy"},
		},
		{
			Name:             "cms_requirements",
			RequiredSections: []string{"coverage_criteria", "evidence_summary", "implementation"},
			Keywords:         []string{"medically necessary", "coverage", "reimbursement"},
		},
		{
			Name:             "hipaa_compliance",
			RequiredSections: []string{"privacy", "security", "patient_consent"},
			Keywords:         []string{"hipaa", "privacy", "protected health information", "phi", "consent"},
		},
		{
			Name:             "clinical_standards",
			RequiredSections: []string{"clinical_guidelines", "evidence_base", "monitoring"},
			Keywords:         []string{"evidence-based", "clinical practice", "patient safety", "quality"},
		},
	}
}

// frameworksFile is the on-disk layout of a frameworks file.
type frameworksFile struct {
	Frameworks []types.ComplianceFramework `yaml:"frameworks"`
}

// LoadFrameworks reads frameworks from a YAML file of the form
//
//	frameworks:
//	  - name: fda_guidelines
//	    required_sections: [policy_statement, rationale]
//	    keywords: [safety, efficacy]
//
// and validates them.
func LoadFrameworks(path string) ([]types.ComplianceFramework, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading frameworks %s: %w", path, err)
	}
	var f frameworksFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing frameworks %s: %w", path, err)
	}
	if err := ValidateFrameworks(f.Frameworks); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Frameworks, nil
}

// ValidateFrameworks checks that at least one framework exists, that names
// are non-empty and unique, and that every framework has at least one
// required section or keyword.
func ValidateFrameworks(frameworks []types.ComplianceFramework) error {
	if len(frameworks) == 0 {
		return ErrNoFrameworks
	}
	seen := make(map[string]bool, len(frameworks))
	for i, fw := range frameworks {
		name := strings.TrimSpace(fw.Name)
		if name == "" {
			return fmt.Errorf("%w: framework %d has no name", ErrInvalidFramework, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateFramework, name)
		}
		seen[name] = true
		if len(fw.RequiredSections) == 0 && len(fw.Keywords) == 0 {
			return fmt.Errorf("%w: %s has no required sections or keywords", ErrInvalidFramework, name)
		}
	}
	return nil
}

// SelectFrameworks returns the named frameworks in the order of names. An
// empty names list returns all frameworks unchanged.
func SelectFrameworks(all []types.ComplianceFramework, names []string) ([]types.ComplianceFramework, error) {
	if len(names) == 0 {
		return all, nil
	}
	byName := make(map[string]types.ComplianceFramework, len(all))
	for _, fw := range all {
		byName[fw.Name] = fw
	}
	out := make([]types.ComplianceFramework, 0, len(names))
	for _, n := range names {
		fw, ok := byName[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFramework, n)
		}
		out = append(out, fw)
	}
	return out, nil
}
