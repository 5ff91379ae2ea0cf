// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/policy-engine/internal/compliance"
)

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the compliance frameworks in effect",
	Long: `Frameworks prints the frameworks validate would apply, in evaluation
order: the built-in set, or compliance.frameworks_file when configured,
narrowed to compliance.frameworks.`,
	RunE: runFrameworks,
}

func init() {
	frameworksCmd.Flags().Bool("json", false, "print as JSON")
	rootCmd.AddCommand(frameworksCmd)
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	fws, err := compliance.FrameworksFromConfig(engineCfg.Compliance)
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeOutput(cmd.OutOrStdout(), "", fws)
	}

	w := cmd.OutOrStdout()
	for i, fw := range fws {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", fw.Name)
		fmt.Fprintf(w, "  sections: %s\n", strings.Join(fw.RequiredSections, ", "))
		fmt.Fprintf(w, "  keywords: %s\n", strings.Join(fw.Keywords, ", "))
	}
	return nil
}
