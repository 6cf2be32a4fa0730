// Package commands contains CLI command implementations for the relay.
package commands

import (
	"context"
	"log/slog"

	"github.com/cityops/esb-relay/internal/app"
)

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}
