// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/compliance"
	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a policy draft against compliance frameworks",
	Long: `Validate checks a draft against every configured framework: required
sections must be present and non-empty, and at least one framework keyword
should appear in the text. The report carries the compliance score, overall
status, issues, warnings and recommendations.

With --synthesis, the evidence base is validated as well and attached to
the report without changing the score. With --regulations, the draft text
is checked for each named regulation.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("draft", "", "policy draft file (JSON or YAML)")
	validateCmd.Flags().String("synthesis", "", "evidence synthesis to validate alongside the draft")
	validateCmd.Flags().StringSlice("regulations", nil, "regulation names to check alignment for")
	validateCmd.Flags().String("output", "", "write the report here")
	validateCmd.Flags().Bool("json", false, "print the report as JSON")
	_ = validateCmd.MarkFlagRequired("draft")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	draftPath, _ := cmd.Flags().GetString("draft")
	synthesisPath, _ := cmd.Flags().GetString("synthesis")
	regulations, _ := cmd.Flags().GetStringSlice("regulations")
	output, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	d, err := draft.LoadDraft(draftPath)
	if err != nil {
		return err
	}

	s, err := newStack(false)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.engine(draftPath).ValidateDraft(cmd.Context(), d)
	if err != nil {
		return err
	}
	if synthesisPath != "" {
		synthesis, err := evidence.LoadSynthesis(synthesisPath)
		if err != nil {
			return err
		}
		ev := compliance.ValidateEvidenceQuality(synthesis)
		report.EvidenceValidation = &ev
	}

	if len(regulations) > 0 {
		printAlignment(cmd.OutOrStdout(), compliance.CheckAlignment(d.Content, regulations))
	}
	if output != "" {
		if err := writeOutput(cmd.OutOrStdout(), output, report); err != nil {
			return err
		}
	}
	if jsonOutput {
		return writeOutput(cmd.OutOrStdout(), "", report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func printReport(w io.Writer, r types.ValidationReport) {
	fmt.Fprintf(w, "Overall status:   %s\n", r.OverallStatus)
	fmt.Fprintf(w, "Compliance score: %.2f\n\n", r.ComplianceScore)

	fmt.Fprintf(w, "%-22s  %-8s  %-6s  %-6s\n", "Framework", "Status", "Passed", "Failed")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, name := range r.Frameworks {
		fr := r.FrameworkResults[name]
		fmt.Fprintf(w, "%-22s  %-8s  %-6d  %-6d\n", name, fr.Status, fr.ChecksPassed, fr.ChecksFailed)
	}

	printList(w, "Issues", r.Issues)
	printList(w, "Warnings", r.Warnings)
	printList(w, "Recommendations", r.Recommendations)

	if ev := r.EvidenceValidation; ev != nil {
		fmt.Fprintf(w, "\nEvidence validation: %s (score %.2f)\n", ev.Status, ev.EvidenceQualityScore)
		printList(w, "Evidence issues", ev.Issues)
		printList(w, "Evidence warnings", ev.Warnings)
	}
}

func printAlignment(w io.Writer, a types.AlignmentResult) {
	printList(w, "Aligned regulations", a.Aligned)
	printList(w, "Not aligned", a.NotAligned)
	fmt.Fprintln(w)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
