// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a policy draft as json, yaml, markdown or html",
	Long: `Export writes a draft to <export.dir>/<policy_id>.<ext>. The export is
recorded in the audit trail.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("draft", "", "policy draft file (JSON or YAML)")
	exportCmd.Flags().String("format", "markdown", "export format: json, yaml, markdown or html")
	exportCmd.Flags().String("dir", "", "export directory (default from config)")
	_ = exportCmd.MarkFlagRequired("draft")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	draftPath, _ := cmd.Flags().GetString("draft")
	format, _ := cmd.Flags().GetString("format")
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		engineCfg.Export.Dir = dir
	}

	d, err := draft.LoadDraft(draftPath)
	if err != nil {
		return err
	}

	s, err := newStack(true)
	if err != nil {
		return err
	}
	defer s.Close()

	path, err := s.exporter.Export(d, types.ExportFormat(format))
	if err != nil {
		return err
	}
	if _, err := s.audit.Export(cmd.Context(), s.exporter.PolicyID(d), format, path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
