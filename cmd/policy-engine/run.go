// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline for a topic",
	Long: `Run chains every stage for one topic: score and synthesize the records,
render a draft, validate it together with its evidence base, and record each
step in the audit trail. With --package (or export.package in config) a
dashboard package is written to the export directory.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("records", "", "article records file (.json, .yaml or .yml)")
	runCmd.Flags().String("topic", "", "topic of the policy")
	runCmd.Flags().String("type", "", "policy type: clinical_policy or coverage_policy (default from config)")
	runCmd.Flags().Bool("package", false, "write a dashboard package")
	runCmd.Flags().String("output", "", "write the full result here")
	_ = runCmd.MarkFlagRequired("records")
	_ = runCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	recordsPath, _ := cmd.Flags().GetString("records")
	topic, _ := cmd.Flags().GetString("topic")
	policyType, _ := cmd.Flags().GetString("type")
	pkg, _ := cmd.Flags().GetBool("package")
	output, _ := cmd.Flags().GetString("output")
	if policyType == "" {
		policyType = string(engineCfg.Draft.PolicyType)
	}

	records, err := evidence.LoadRecords(recordsPath)
	if err != nil {
		return err
	}

	s, err := newStack(pkg || engineCfg.Export.Package)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.engine(recordsPath).Run(cmd.Context(), topic, records, types.PolicyType(policyType))
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Policy ID:          %s\n", res.Summary.PolicyID)
	fmt.Fprintf(w, "Articles:           %d found, %d scored, %d failed\n",
		res.Summary.ArticlesFound, res.Summary.ArticlesScored, res.Summary.ArticlesFailed)
	fmt.Fprintf(w, "High-quality:       %d\n", res.Summary.HighQualityEvidence)
	fmt.Fprintf(w, "Compliance:         %s (%.2f)\n", res.Summary.ComplianceStatus, res.Summary.ComplianceScore)
	fmt.Fprintf(w, "Audit session:      %s\n", s.audit.SessionID())
	if res.ExportDir != "" {
		fmt.Fprintf(w, "Package:            %s\n", res.ExportDir)
	}

	if output != "" {
		return writeOutput(w, output, res)
	}
	return nil
}
