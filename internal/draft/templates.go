// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// clinicalTmpl renders a clinical_policy document. Field names are the
// component keys.
var clinicalTmpl = template.Must(template.New("clinical_policy").Option("missingkey=error").Parse(`# Clinical Policy: {{.title}}

## Policy Number
{{.policy_number}}

## Effective Date
{{.effective_date}}

## Policy Statement
{{.policy_statement}}

## Rationale
{{.rationale}}

## Evidence Base
{{.evidence_base}}

## Clinical Guidelines
{{.clinical_guidelines}}

## Compliance Requirements
{{.compliance_requirements}}

## References
{{.references}}

## Approval and Review
- Last Reviewed: {{.review_date}}
- Next Review: {{.next_review_date}}
- Approved By: Medical Affairs Committee
`))

// coverageTmpl renders a coverage_policy document.
var coverageTmpl = template.Must(template.New("coverage_policy").Option("missingkey=error").Parse(`# Coverage Policy: {{.title}}

## Policy Number
{{.policy_number}}

## Effective Date
{{.effective_date}}

## Policy Overview
{{.overview}}

## Coverage Criteria
{{.coverage_criteria}}

## Evidence Summary
{{.evidence_summary}}

## Regulatory Alignment
{{.regulatory_alignment}}

## Implementation Guidelines
{{.implementation}}

## References
{{.references}}

## Approval and Review
- Last Reviewed: {{.review_date}}
- Next Review: {{.next_review_date}}
`))

var templates = map[types.PolicyType]*template.Template{
	types.PolicyClinical: clinicalTmpl,
	types.PolicyCoverage: coverageTmpl,
}

func render(t *template.Template, components map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, components); err != nil {
		return "", err
	}
	return buf.String(), nil
}
