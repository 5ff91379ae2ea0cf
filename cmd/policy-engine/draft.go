// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Render a policy draft from an evidence synthesis",
	Long: `Draft reads a synthesis written by process and renders a policy draft
from a template. The clinical_policy template covers statement, rationale,
evidence base, clinical guidelines and compliance requirements. The
coverage_policy template covers coverage criteria, evidence summary,
regulatory alignment and implementation.

Use --revise with --feedback to annotate an existing draft instead.`,
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().String("synthesis", "", "evidence synthesis file (JSON or YAML)")
	draftCmd.Flags().String("type", "", "policy type: clinical_policy or coverage_policy (default from config)")
	draftCmd.Flags().String("output", "", "write the draft here (JSON to stdout if empty)")
	draftCmd.Flags().String("revise", "", "existing draft to annotate with feedback")
	draftCmd.Flags().StringSlice("feedback", nil, "revision feedback (repeatable)")

	rootCmd.AddCommand(draftCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	synthesisPath, _ := cmd.Flags().GetString("synthesis")
	policyType, _ := cmd.Flags().GetString("type")
	output, _ := cmd.Flags().GetString("output")
	revisePath, _ := cmd.Flags().GetString("revise")
	feedback, _ := cmd.Flags().GetStringSlice("feedback")

	s, err := newStack(false)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := cmd.Context()

	if revisePath != "" {
		d, err := draft.LoadDraft(revisePath)
		if err != nil {
			return err
		}
		revised := s.generator.Revise(d, feedback)
		if _, err := s.audit.Decision(ctx, "revision", "draft revised", "reviewer feedback",
			map[string]any{"policy_id": d.PolicyID(), "feedback": feedback}); err != nil {
			return err
		}
		return emitDraft(cmd, output, revised)
	}

	if synthesisPath == "" {
		return errors.New("--synthesis or --revise is required")
	}
	synthesis, err := evidence.LoadSynthesis(synthesisPath)
	if err != nil {
		return err
	}
	if policyType == "" {
		policyType = string(engineCfg.Draft.PolicyType)
	}

	d, err := s.generator.Generate(synthesis, types.PolicyType(policyType))
	if err != nil {
		return err
	}
	if _, err := s.audit.PolicyGeneration(ctx, string(d.PolicyType), d.Metadata.Generator,
		synthesis.TotalArticles, d.PolicyID()); err != nil {
		return err
	}
	return emitDraft(cmd, output, d)
}

// emitDraft saves d to path, or prints it as JSON when path is empty.
func emitDraft(cmd *cobra.Command, path string, d types.PolicyDraft) error {
	if path == "" {
		return writeOutput(cmd.OutOrStdout(), "", d)
	}
	if err := draft.SaveDraft(path, d); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
