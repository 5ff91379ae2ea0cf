// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"fmt"
	"strings"

	"github.com/pdiddy/policy-engine/internal/textmine"
	"github.com/pdiddy/policy-engine/pkg/types"
)

// maxSuggestedKeywords caps the keywords listed in a missing-keyword warning.
const maxSuggestedKeywords = 3

// EvaluateFramework checks one document against one framework.
//
// Each required section is one check: it passes when the component exists
// and is not empty. The keyword phrases form a single further check that
// passes when any phrase occurs in content (case-insensitive); when none
// does, a warning is raised instead of a failure. A framework without
// keywords therefore always carries the warning.
func EvaluateFramework(fw types.ComplianceFramework, content string, components map[string]string) types.FrameworkResult {
	result := types.FrameworkResult{
		Framework: fw.Name,
		Issues:    []string{},
		Warnings:  []string{},
	}

	for _, section := range fw.RequiredSections {
		if components[section] == "" {
			result.Issues = append(result.Issues,
				fmt.Sprintf("Missing required section: %s for %s", section, fw.Name))
			result.ChecksFailed++
			continue
		}
		result.ChecksPassed++
	}

	if textmine.NewLexicon(fw.Keywords...).MatchAny(content) {
		result.ChecksPassed++
	} else {
		suggest := fw.Keywords[:min(len(fw.Keywords), maxSuggestedKeywords)]
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No %s keywords found in policy. Consider including: %s", fw.Name, strings.Join(suggest, ", ")))
	}

	result.Status = frameworkStatus(result)
	return result
}

func frameworkStatus(r types.FrameworkResult) types.CheckStatus {
	switch {
	case r.ChecksFailed > 0:
		return types.CheckFail
	case len(r.Warnings) > 0:
		return types.CheckWarning
	default:
		return types.CheckPass
	}
}
