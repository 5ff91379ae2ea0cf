// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Score article records and synthesize the evidence",
	Long: `Process reads article records from a JSON or YAML file, grades each one
for quality and relevance, extracts key findings from structured abstracts
and writes the evidence synthesis for a topic.

Records that fail to score are skipped and counted. Use --scored to also
write the per-record results.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("records", "", "article records file (.json, .yaml or .yml)")
	processCmd.Flags().String("topic", "", "topic of the synthesis")
	processCmd.Flags().String("output", "", "write the synthesis here (JSON to stdout if empty)")
	processCmd.Flags().String("scored", "", "also write scored records to this file")
	processCmd.Flags().String("min-quality", "", "drop records below this tier: high, medium or low")
	_ = processCmd.MarkFlagRequired("records")
	_ = processCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	recordsPath, _ := cmd.Flags().GetString("records")
	topic, _ := cmd.Flags().GetString("topic")
	output, _ := cmd.Flags().GetString("output")
	scoredPath, _ := cmd.Flags().GetString("scored")
	minQuality, _ := cmd.Flags().GetString("min-quality")
	if minQuality == "" {
		minQuality = string(engineCfg.Evidence.MinQuality)
	}

	records, err := evidence.LoadRecords(recordsPath)
	if err != nil {
		return err
	}

	s, err := newStack(false)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if _, err := s.audit.EvidenceExtraction(ctx, topic, len(records), recordsPath); err != nil {
		return err
	}

	scored, summary, err := s.processor.Process(ctx, records)
	if err != nil {
		return err
	}
	if minQuality != "" {
		if scored, err = evidence.FilterByQuality(scored, types.QualityTier(minQuality)); err != nil {
			return err
		}
	}
	synthesis := evidence.Synthesize(scored, topic)
	if _, err := s.audit.EvidenceProcessing(ctx, summary.Processed, synthesis.HighQualityCount, topic); err != nil {
		return err
	}

	printScored(cmd.ErrOrStderr(), scored, summary)

	if scoredPath != "" {
		if err := writeOutput(cmd.OutOrStdout(), scoredPath, scored); err != nil {
			return err
		}
	}
	return writeOutput(cmd.OutOrStdout(), output, synthesis)
}

func printScored(w io.Writer, scored []types.ScoredEvidence, summary evidence.ProcessSummary) {
	fmt.Fprintf(w, "%-12s  %-7s  %-9s  %-8s  %s\n", "PMID", "Quality", "Relevance", "Findings", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range scored {
		title := e.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		fmt.Fprintf(w, "%-12s  %-7s  %-9.2f  %-8d  %s\n", e.ID, e.Quality, e.Relevance, len(e.Findings), title)
	}
	fmt.Fprintf(w, "\n%d processed, %d failed, %d total\n", summary.Processed, summary.Failed, summary.Total())
}
