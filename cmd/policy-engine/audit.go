// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Long: `Audit reads entries written by earlier commands from the configured
backend (jsonl files or the sqlite database).`,
}

var auditSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded audit sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, err := audit.Open(engineCfg.Audit)
		if err != nil {
			return err
		}
		defer sink.Close()

		sessions, err := sink.Sessions(cmd.Context())
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No audit sessions found.")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

var auditReportCmd = &cobra.Command{
	Use:   "report <session_id>",
	Short: "Summarize one audit session",
	Long: `Report summarizes a session: start and end time, number of activities,
counts per activity type and the entries themselves. Use --output to write
the report as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuditReport,
}

func init() {
	auditReportCmd.Flags().String("output", "", "write the report to this JSON file")
	auditReportCmd.Flags().Bool("json", false, "print the full report as JSON")

	auditCmd.AddCommand(auditSessionsCmd)
	auditCmd.AddCommand(auditReportCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAuditReport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	sink, err := audit.Open(engineCfg.Audit)
	if err != nil {
		return err
	}
	defer sink.Close()

	l := audit.NewLogger(sink, audit.WithSessionID(args[0]), audit.WithLogger(logger))
	report, err := l.Report(cmd.Context(), "")
	if err != nil {
		return err
	}

	if output != "" {
		if err := audit.WriteReport(output, report); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
	}
	if jsonOutput {
		return writeOutput(cmd.OutOrStdout(), "", report)
	}

	w := cmd.OutOrStdout()
	if report.Error != "" {
		fmt.Fprintf(w, "%s: %s\n", report.SessionID, report.Error)
		return nil
	}
	fmt.Fprintf(w, "Session:    %s\n", report.SessionID)
	fmt.Fprintf(w, "Start:      %s\n", report.StartTime)
	fmt.Fprintf(w, "End:        %s\n", report.EndTime)
	fmt.Fprintf(w, "Activities: %d\n\n", report.TotalActivities)

	kinds := make([]string, 0, len(report.ActivitySummary))
	for k := range report.ActivitySummary {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-24s %d\n", k, report.ActivitySummary[audit.ActivityType(k)])
	}
	return nil
}
