package usecase

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	apperrors "github.com/cityops/esb-relay/internal/errors"
	"github.com/cityops/esb-relay/internal/relay/domain"
	"github.com/cityops/esb-relay/internal/relay/service"
)

// PipelineUseCase drives eligible records through transform, render, and
// delivery, strictly one at a time in ascending activity-id order. Downstream
// status transitions are not order-independent, so the first unrecovered error
// aborts the run: skipping a failed record would deliver everything behind it
// out of order.
type PipelineUseCase struct {
	profile      *domain.ApplicationProfile
	recordSource RecordSource
	transformer  service.Transformer
	renderer     service.Renderer
	deliverer    service.Deliverer
	logger       *slog.Logger
}

// NewPipelineUseCase creates a new PipelineUseCase for one application profile.
func NewPipelineUseCase(
	profile *domain.ApplicationProfile,
	recordSource RecordSource,
	transformer service.Transformer,
	renderer service.Renderer,
	deliverer service.Deliverer,
	logger *slog.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		profile:      profile,
		recordSource: recordSource,
		transformer:  transformer,
		renderer:     renderer,
		deliverer:    deliverer,
		logger:       logger,
	}
}

// Run executes one batch: fetch eligible records, sort them oldest-first, and
// process each to a terminal status write-back. Re-runs are safe: a record
// written SENT or DO_NOT_SEND no longer matches the selection filter.
func (uc *PipelineUseCase) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	logger := uc.logger.With(
		slog.String("run_id", runID),
		slog.String("profile", uc.profile.Name),
	)

	result := &RunResult{RunID: runID, Profile: uc.profile.Name}

	logger.Info("starting relay run")

	records, err := uc.recordSource.Query(ctx, uc.profile.ViewID, domain.ReadyToSendFilter(uc.profile))
	if err != nil {
		logger.Error("failed to fetch records", slog.Any("error", err))
		return result, apperrors.Wrap(err, "failed to fetch records")
	}

	result.Fetched = len(records)
	logger.Info("fetched records", slog.Int("count", len(records)))

	if len(records) == 0 {
		return result, nil
	}

	uc.sortByActivityID(records)

	for _, record := range records {
		if err := uc.processRecord(ctx, logger, record, result); err != nil {
			return result, err
		}
	}

	logger.Info("relay run complete",
		slog.Int("sent", result.Sent),
		slog.Int("suppressed", result.Suppressed),
	)

	return result, nil
}

// sortByActivityID orders records ascending by activity id, lowest (oldest)
// first. Activity timestamps only have minute precision, so the monotonic
// activity id is the sort key; activities are immutable once created upstream.
func (uc *PipelineUseCase) sortByActivityID(records []*domain.RawRecord) {
	activityIDField := uc.profile.Fields[domain.FieldActivityID]
	sort.SliceStable(records, func(i, j int) bool {
		return domain.CompareActivityIDs(
			records[i].Field(activityIDField),
			records[j].Field(activityIDField),
		) < 0
	})
}

// processRecord drives one record to its terminal status write-back.
func (uc *PipelineUseCase) processRecord(
	ctx context.Context,
	logger *slog.Logger,
	record *domain.RawRecord,
	result *RunResult,
) error {
	recordLogger := logger.With(
		slog.String("record_id", record.ID),
		slog.String("activity_id", record.Field(uc.profile.Fields[domain.FieldActivityID])),
		slog.String("activity_name", record.Field(uc.profile.Fields[domain.FieldActivityName])),
	)

	message, err := uc.transformer.Transform(record)
	if err != nil {
		recordLogger.Error("failed to transform record", slog.Any("error", err))
		return err
	}

	if message.Suppressed {
		recordLogger.Info("activity suppressed, skipping delivery")
		if err := uc.writeStatus(ctx, record, domain.StatusDoNotSend); err != nil {
			recordLogger.Error("failed to write back status", slog.Any("error", err))
			return err
		}
		result.Suppressed++
		return nil
	}

	payload, err := uc.renderer.Render(message)
	if err != nil {
		recordLogger.Error("failed to render message", slog.Any("error", err))
		return err
	}

	recordLogger.Info("sending message",
		slog.String("csr_activity_code", message.Field(domain.FieldCSRActivityCode)),
	)

	if err := uc.deliverer.Deliver(ctx, payload); err != nil {
		recordLogger.Error("failed to deliver message", slog.Any("error", err))
		return err
	}

	if err := uc.writeStatus(ctx, record, domain.StatusSent); err != nil {
		recordLogger.Error("failed to write back status", slog.Any("error", err))
		return err
	}

	recordLogger.Info("record sent")
	result.Sent++
	return nil
}

// writeStatus updates only the record's esb_status field.
func (uc *PipelineUseCase) writeStatus(
	ctx context.Context,
	record *domain.RawRecord,
	status domain.DeliveryStatus,
) error {
	return uc.recordSource.Update(
		ctx,
		uc.profile.ObjectID,
		record.ID,
		uc.profile.Fields[domain.FieldESBStatus],
		string(status),
	)
}
