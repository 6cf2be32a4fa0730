package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cityops/esb-relay/internal/app"
	"github.com/cityops/esb-relay/internal/config"
	"github.com/cityops/esb-relay/internal/relay/usecase"
)

// metricsShutdownTimeout bounds how long the metrics server may take to drain
// after the batch finishes.
const metricsShutdownTimeout = 5 * time.Second

// RunSend runs one relay batch for the named application profile. When metrics
// are enabled the Prometheus endpoint is served for the duration of the run so
// an in-flight batch can be scraped. Blocks until the batch finishes, a fatal
// error occurs, or SIGINT/SIGTERM is received.
func RunSend(ctx context.Context, profileName string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	pipeline, err := container.PipelineUseCase(profileName)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var metricsServer metricsRunner
	if cfg.MetricsEnabled {
		server, err := container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		metricsServer = server
		g.Go(func() error {
			if err := server.Start(gctx); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		runErr := executeSend(gctx, pipeline, logger, os.Stdout)

		// The batch is over; stop serving the scrape endpoint so the first
		// goroutine can return.
		if metricsServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown", slog.Any("error", err))
			}
		}

		return runErr
	})

	return g.Wait()
}

// metricsRunner is the slice of the metrics server the send command drives.
type metricsRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// executeSend runs the pipeline and writes the batch summary.
func executeSend(ctx context.Context, pipeline usecase.UseCase, logger *slog.Logger, out io.Writer) error {
	result, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("relay run failed: %w", err)
	}

	summary, marshalErr := json.MarshalIndent(map[string]any{
		"run_id":     result.RunID,
		"profile":    result.Profile,
		"fetched":    result.Fetched,
		"sent":       result.Sent,
		"suppressed": result.Suppressed,
	}, "", "  ")
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal run summary: %w", marshalErr)
	}
	fmt.Fprintln(out, string(summary))

	return nil
}
