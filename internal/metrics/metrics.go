// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus collectors for evidence scoring and
// compliance validation.
//
// Metrics:
//   - <ns>_evidence_records_scored_total: records scored, by quality tier
//   - <ns>_evidence_record_failures_total: records dropped at the record boundary
//   - <ns>_compliance_validations_total: validation runs, by overall status
//   - <ns>_compliance_score: distribution of compliance scores
//   - <ns>_framework_checks_total: framework checks, by framework and outcome
//
// A nil *Collector is valid and records nothing, so library callers can
// leave metrics out.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/policy-engine/pkg/types"
)

const defaultNamespace = "policy_engine"

// Collector holds the engine's collectors and the registry they live in.
type Collector struct {
	registry *prometheus.Registry

	recordsScored   *prometheus.CounterVec
	recordFailures  prometheus.Counter
	validations     *prometheus.CounterVec
	complianceScore prometheus.Histogram
	frameworkChecks *prometheus.CounterVec
}

// New creates the collectors and registers them with a private registry.
func New(cfg types.MetricsConfig) *Collector {
	ns := cfg.Namespace
	if ns == "" {
		ns = defaultNamespace
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),

		recordsScored: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "evidence",
				Name:      "records_scored_total",
				Help:      "Total number of evidence records scored, by quality tier",
			},
			[]string{"quality"},
		),

		recordFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "evidence",
				Name:      "record_failures_total",
				Help:      "Total number of evidence records dropped because scoring failed",
			},
		),

		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Subsystem: "compliance",
				Name:      "validations_total",
				Help:      "Total number of policy validations, by overall status",
			},
			[]string{"status"},
		),

		complianceScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: ns,
				Subsystem: "compliance",
				Name:      "score",
				Help:      "Distribution of compliance scores",
				Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
			},
		),

		frameworkChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "framework_checks_total",
				Help:      "Total number of framework checks, by framework and outcome",
			},
			[]string{"framework", "outcome"},
		),
	}

	c.registry.MustRegister(
		c.recordsScored,
		c.recordFailures,
		c.validations,
		c.complianceScore,
		c.frameworkChecks,
	)
	return c
}

// Registry returns the registry holding the collectors.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// RecordScored counts one scored record.
func (c *Collector) RecordScored(q types.QualityTier) {
	if c == nil {
		return
	}
	c.recordsScored.WithLabelValues(string(q)).Inc()
}

// RecordFailed counts one record dropped at the record boundary.
func (c *Collector) RecordFailed() {
	if c == nil {
		return
	}
	c.recordFailures.Inc()
}

// ValidationCompleted records one validation report.
func (c *Collector) ValidationCompleted(r types.ValidationReport) {
	if c == nil {
		return
	}
	c.validations.WithLabelValues(string(r.OverallStatus)).Inc()
	c.complianceScore.Observe(r.ComplianceScore)
	for name, fr := range r.FrameworkResults {
		c.frameworkChecks.WithLabelValues(name, "passed").Add(float64(fr.ChecksPassed))
		c.frameworkChecks.WithLabelValues(name, "failed").Add(float64(fr.ChecksFailed))
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
