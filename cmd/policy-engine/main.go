// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the policy-engine CLI.
//
// The CLI scores article records, drafts healthcare policies from the
// synthesized evidence, validates drafts against compliance frameworks and
// keeps an audit trail of every step.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/policy-engine/internal/logging"
	"github.com/pdiddy/policy-engine/internal/metrics"
	"github.com/pdiddy/policy-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	engineCfg types.EngineConfig
	logger    *slog.Logger
	collector *metrics.Collector
)

// rootCmd is the base command for the policy-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "policy-engine",
	Short: "Evidence scoring, policy drafting and compliance validation",
	Long: `policy-engine turns research article records into a healthcare policy draft.

Records are graded for quality and relevance and synthesized into an evidence
summary. A draft is rendered from the summary and validated against regulatory
frameworks. Each stage is a subcommand (process, draft, validate, export), and
run chains them end to end. Every step is written to an audit trail.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&engineCfg); err != nil {
			return fmt.Errorf("decoding config: %w", err)
		}
		l, err := logging.New(engineCfg.Log, os.Stderr)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		collector = metrics.New(engineCfg.Metrics)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if path := engineCfg.Metrics.TextfilePath; path != "" {
			return collector.WriteTextfile(path)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./policy-engine.yaml or ~/.config/policy-engine/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("audit-backend", "jsonl", "audit backend: memory, jsonl or sqlite")
	pf.String("audit-dir", "data/audit_logs", "directory for audit logs")
	pf.String("metrics-file", "", "write Prometheus metrics to this file on exit")

	bindings := map[string]string{
		"log.level":             "log-level",
		"log.format":            "log-format",
		"audit.backend":         "audit-backend",
		"audit.dir":             "audit-dir",
		"metrics.textfile_path": "metrics-file",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	setDefaults()
}

// setDefaults registers every config key so env overrides apply on Unmarshal.
func setDefaults() {
	viper.SetDefault("evidence.workers", 4)
	viper.SetDefault("evidence.min_quality", "")
	viper.SetDefault("evidence.lexicon.rigor_phrases", []string{})
	viper.SetDefault("evidence.lexicon.significance_markers", []string{})
	viper.SetDefault("evidence.lexicon.finding_indicators", []string{})
	viper.SetDefault("evidence.lexicon.section_labels", []string{})
	viper.SetDefault("compliance.frameworks_file", "")
	viper.SetDefault("compliance.frameworks", []string{})
	viper.SetDefault("draft.policy_type", string(types.PolicyClinical))
	viper.SetDefault("export.dir", "data/exports")
	viper.SetDefault("export.package", false)
	viper.SetDefault("metrics.namespace", "policy_engine")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("policy-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "policy-engine"))
		}
	}

	viper.SetEnvPrefix("POLICY_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
