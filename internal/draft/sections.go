// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"fmt"
	"strings"

	"github.com/pdiddy/policy-engine/pkg/types"
)

const (
	defaultTopic         = "Healthcare Policy"
	maxRationaleFindings = 5
	maxEntryFindings     = 3
	maxSupportingRefs    = 5
)

const clinicalGuidelines = `Based on the evidence reviewed, the following clinical guidelines are recommended:

1. **Assessment and Diagnosis**
   - Apply evidence-based diagnostic criteria
   - Account for patient-specific factors and comorbidities
   - Record all clinical findings

2. **Treatment Approach**
   - Follow evidence-based treatment protocols
   - Monitor patient response and adjust as needed
   - Consider alternatives for non-responders

3. **Monitoring and Follow-up**
   - Set a regular monitoring schedule
   - Track outcomes and adverse events for patient safety
   - Adjust the treatment plan on clinical response

4. **Documentation Requirements**
   - Keep complete clinical records
   - Record the rationale for treatment decisions
   - Record patient consent and education`

const complianceRequirements = `This policy must comply with:

1. **Regulatory Standards**
   - FDA guidelines for medical devices and medications
   - CMS coverage policies and requirements
   - State healthcare regulations

2. **Quality Standards**
   - Joint Commission standards
   - National Quality Forum measures
   - Evidence-based clinical practice guidelines

3. **Privacy and Security**
   - HIPAA compliance for protected health information
   - Secure documentation and communication
   - Patient consent and authorization

4. **Ethical Considerations**
   - Informed consent procedures
   - Shared decision-making
   - Equitable access to care`

const coverageImplementation = `1. **Prior Authorization**
   - Submit clinical documentation supporting medical necessity
   - Include relevant test results and treatment history

2. **Claims and Reimbursement**
   - Bill with codes that match the documented service
   - Keep records available for audit

3. **Provider Communication**
   - Notify network providers of this policy before the effective date
   - Route questions to the utilization management team`

const regulatoryAlignment = `This policy is aligned with:
- CMS national and local coverage determinations
- FDA approved labeling for covered products
- HIPAA privacy and security rules for member data`

func title(s types.EvidenceSynthesis) string {
	return topic(s) + " - Clinical Guidelines and Coverage Policy"
}

func topic(s types.EvidenceSynthesis) string {
	if t := strings.TrimSpace(s.Topic); t != "" {
		return t
	}
	return defaultTopic
}

func policyStatement(s types.EvidenceSynthesis) string {
	return fmt.Sprintf("This policy sets clinical guidelines for %s based on a review of %d peer-reviewed studies, "+
		"including %d high-quality research articles. It aims for evidence-based, safe and effective care "+
		"that meets regulatory standards.", topic(s), s.TotalArticles, s.HighQualityCount)
}

func rationale(s types.EvidenceSynthesis) string {
	var b strings.Builder
	b.WriteString(s.Summary)
	b.WriteString("\n\nKey Evidence Supporting This Policy:")
	for i, f := range s.KeyFindings[:min(len(s.KeyFindings), maxRationaleFindings)] {
		fmt.Fprintf(&b, "\n%d. %s", i+1, f)
	}
	return strings.TrimSpace(b.String())
}

func evidenceBase(s types.EvidenceSynthesis) string {
	var b strings.Builder
	b.WriteString("### Primary Evidence Sources\n")
	if len(s.EvidenceBase.HighQuality) == 0 {
		b.WriteString("\nNo high-quality studies were identified.")
	}
	for i, e := range s.EvidenceBase.HighQuality {
		fmt.Fprintf(&b, "\n%d. %s (PMID: %s)", i+1, orUntitled(e.Title), orNA(e.ID))
		if len(e.Findings) > 0 {
			b.WriteString("\n   Key Findings:")
			for _, f := range e.Findings[:min(len(e.Findings), maxEntryFindings)] {
				fmt.Fprintf(&b, "\n   - %s", f)
			}
		}
	}
	return b.String()
}

func evidenceSummary(s types.EvidenceSynthesis) string {
	return fmt.Sprintf("%s\n\nQuality distribution: %d high, %d medium, %d low.",
		s.Summary, s.HighQualityCount, s.MediumQualityCount, s.LowQualityCount)
}

func coverageCriteria(s types.EvidenceSynthesis) string {
	return fmt.Sprintf("Services for %s are covered when medically necessary and all of the following apply:\n"+
		"1. The treating clinician documents the indication.\n"+
		"2. The service is supported by the evidence summarized in this policy.\n"+
		"3. Less intensive alternatives were considered.", topic(s))
}

func overview(s types.EvidenceSynthesis) string {
	return fmt.Sprintf("This policy defines coverage for %s. It is based on %d research articles, %d of them high quality.",
		topic(s), s.TotalArticles, s.HighQualityCount)
}

func references(s types.EvidenceSynthesis) string {
	var lines []string
	n := 1
	for _, e := range s.EvidenceBase.HighQuality {
		lines = append(lines, fmt.Sprintf("%d. %s - PMID: %s", n, orUntitled(e.Title), orNA(e.ID)))
		n++
	}
	supporting := s.EvidenceBase.Supporting
	for _, e := range supporting[:min(len(supporting), maxSupportingRefs)] {
		lines = append(lines, fmt.Sprintf("%d. %s - PMID: %s", n, orUntitled(e.Title), orNA(e.ID)))
		n++
	}
	return strings.Join(lines, "\n")
}

func orUntitled(s string) string {
	if s == "" {
		return "Untitled"
	}
	return s
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
