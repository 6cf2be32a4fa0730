package usecase

import (
	"context"
	"time"

	"github.com/cityops/esb-relay/internal/metrics"
)

// pipelineUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type pipelineUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.PipelineMetrics
}

// NewPipelineUseCaseWithMetrics wraps a pipeline UseCase with metrics recording.
func NewPipelineUseCaseWithMetrics(useCase UseCase, m metrics.PipelineMetrics) UseCase {
	return &pipelineUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Run records run duration, run status, and per-outcome record counts.
func (p *pipelineUseCaseWithMetrics) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result, err := p.next.Run(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	if result != nil {
		p.metrics.RecordRun(ctx, result.Profile, status, time.Since(start))
		p.metrics.RecordRecords(ctx, result.Profile, "sent", int64(result.Sent))
		p.metrics.RecordRecords(ctx, result.Profile, "suppressed", int64(result.Suppressed))
	}

	return result, err
}
