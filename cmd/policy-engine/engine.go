// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-engine/internal/audit"
	"github.com/pdiddy/policy-engine/internal/compliance"
	"github.com/pdiddy/policy-engine/internal/draft"
	"github.com/pdiddy/policy-engine/internal/evidence"
	"github.com/pdiddy/policy-engine/internal/export"
	"github.com/pdiddy/policy-engine/internal/workflow"
)

// stack holds the components built from engineCfg for one command.
type stack struct {
	processor *evidence.Processor
	generator *draft.Generator
	validator *compliance.Validator
	audit     *audit.Logger
	sink      audit.Sink
	exporter  *export.Exporter
}

func (s *stack) Close() error {
	if s.sink == nil {
		return nil
	}
	return s.sink.Close()
}

// engine returns a workflow engine over the stack's components.
func (s *stack) engine(source string) *workflow.Engine {
	opts := []workflow.Option{
		workflow.WithLogger(logger),
		workflow.WithSource(source),
	}
	if engineCfg.Evidence.MinQuality != "" {
		opts = append(opts, workflow.WithMinQuality(engineCfg.Evidence.MinQuality))
	}
	if s.exporter != nil {
		opts = append(opts, workflow.WithExporter(s.exporter))
	}
	return workflow.New(s.processor, s.generator, s.validator, s.audit, opts...)
}

// newStack builds every component. withExporter adds the exporter.
func newStack(withExporter bool) (*stack, error) {
	frameworks, err := compliance.FrameworksFromConfig(engineCfg.Compliance)
	if err != nil {
		return nil, err
	}
	validator, err := compliance.NewValidator(frameworks,
		compliance.WithMetrics(collector), compliance.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	sink, err := audit.Open(engineCfg.Audit)
	if err != nil {
		return nil, err
	}

	s := &stack{
		processor: evidence.NewProcessor(evidence.NewScorer(engineCfg.Evidence.Lexicon),
			engineCfg.Evidence, collector, logger),
		generator: draft.NewGenerator(draft.WithLogger(logger)),
		validator: validator,
		audit:     audit.NewLogger(sink, audit.WithLogger(logger)),
		sink:      sink,
	}
	if withExporter {
		s.exporter, err = export.NewExporter(engineCfg.Export, export.WithLogger(logger))
		if err != nil {
			sink.Close()
			return nil, err
		}
	}
	return s, nil
}

// writeOutput writes v to path as JSON or YAML by extension, or as JSON to
// w when path is empty.
func writeOutput(w io.Writer, path string, v any) error {
	if path == "" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
	return nil
}
