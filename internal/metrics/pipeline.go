package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics defines the interface for recording relay pipeline metrics.
// Implementations track run counts, run durations, and per-outcome record
// counts across application profiles.
type PipelineMetrics interface {
	// RecordRun records a completed pipeline run with its status.
	// Status examples: "success", "error"
	RecordRun(ctx context.Context, profile, status string, duration time.Duration)

	// RecordRecords records how many records of a run finished with an outcome.
	// Outcome examples: "sent", "suppressed"
	RecordRecords(ctx context.Context, profile, outcome string, count int64)
}

// pipelineMetrics implements PipelineMetrics using OpenTelemetry metrics.
type pipelineMetrics struct {
	runCounter    metric.Int64Counter
	runDuration   metric.Float64Histogram
	recordCounter metric.Int64Counter
}

// NewPipelineMetrics creates a new PipelineMetrics implementation using the
// provided meter provider. The namespace parameter is used as a prefix for all
// metric names (e.g., "esb_relay"). Returns error if meters cannot be initialized.
func NewPipelineMetrics(meterProvider metric.MeterProvider, namespace string) (PipelineMetrics, error) {
	meter := meterProvider.Meter(namespace)

	runCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_runs_total", namespace),
		metric.WithDescription("Total number of relay runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_run_duration_seconds", namespace),
		metric.WithDescription("Duration of relay runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run duration histogram: %w", err)
	}

	recordCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_records_total", namespace),
		metric.WithDescription("Total number of records processed by outcome"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create record counter: %w", err)
	}

	return &pipelineMetrics{
		runCounter:    runCounter,
		runDuration:   runDuration,
		recordCounter: recordCounter,
	}, nil
}

// RecordRun increments the run counter and records the run duration with
// profile and status labels.
func (p *pipelineMetrics) RecordRun(ctx context.Context, profile, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("profile", profile),
		attribute.String("status", status),
	)
	p.runCounter.Add(ctx, 1, attrs)
	p.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordRecords increments the record counter with profile and outcome labels.
func (p *pipelineMetrics) RecordRecords(ctx context.Context, profile, outcome string, count int64) {
	if count == 0 {
		return
	}
	p.recordCounter.Add(ctx, count,
		metric.WithAttributes(
			attribute.String("profile", profile),
			attribute.String("outcome", outcome),
		),
	)
}

// NoOpPipelineMetrics is a no-op implementation of PipelineMetrics for when
// metrics are disabled.
type NoOpPipelineMetrics struct{}

// NewNoOpPipelineMetrics creates a no-op PipelineMetrics implementation.
func NewNoOpPipelineMetrics() PipelineMetrics {
	return &NoOpPipelineMetrics{}
}

// RecordRun does nothing when metrics are disabled.
func (n *NoOpPipelineMetrics) RecordRun(ctx context.Context, profile, status string, duration time.Duration) {
}

// RecordRecords does nothing when metrics are disabled.
func (n *NoOpPipelineMetrics) RecordRecords(ctx context.Context, profile, outcome string, count int64) {}
