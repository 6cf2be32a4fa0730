// Package usecase implements the relay pipeline: select eligible records in
// delivery order, drive each through transform/render/deliver, and write a
// terminal status back to the record store.
package usecase

import (
	"context"

	"github.com/cityops/esb-relay/internal/relay/domain"
)

// RecordSource defines the record store operations the pipeline consumes.
type RecordSource interface {
	// Query returns all records of a view matching the filter conjunction.
	Query(ctx context.Context, viewID string, filter domain.Filter) ([]*domain.RawRecord, error)
	// Update writes a single field on one record of an object.
	Update(ctx context.Context, objectID, recordID, fieldID, value string) error
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	// RunID identifies the run in log output.
	RunID string
	// Profile is the application profile the run operated on.
	Profile string
	// Fetched is the number of eligible records selected.
	Fetched int
	// Sent is the number of records delivered and written back SENT.
	Sent int
	// Suppressed is the number of records written back DO_NOT_SEND.
	Suppressed int
}

// UseCase defines the interface for the relay pipeline.
type UseCase interface {
	// Run executes one batch run to completion or first unrecovered error.
	Run(ctx context.Context) (*RunResult, error)
}
