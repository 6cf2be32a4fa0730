// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cityops/esb-relay/internal/config"
	"github.com/cityops/esb-relay/internal/http"
	"github.com/cityops/esb-relay/internal/metrics"
	"github.com/cityops/esb-relay/internal/relay/domain"
	"github.com/cityops/esb-relay/internal/relay/repository"
	"github.com/cityops/esb-relay/internal/relay/service"
	"github.com/cityops/esb-relay/internal/relay/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	pipelineMetrics metrics.PipelineMetrics

	// Repositories
	recordSource usecase.RecordSource

	// Services
	renderer  service.Renderer
	deliverer service.Deliverer

	// Servers
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	metricsProviderInit sync.Once
	pipelineMetricsInit sync.Once
	recordSourceInit    sync.Once
	rendererInit        sync.Once
	delivererInit       sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the Prometheus-backed metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// PipelineMetrics returns the pipeline metrics recorder. When metrics are
// disabled it returns a no-op implementation and never touches the provider.
func (c *Container) PipelineMetrics() (metrics.PipelineMetrics, error) {
	c.pipelineMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.pipelineMetrics = metrics.NewNoOpPipelineMetrics()
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["pipelineMetrics"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		pipelineMetrics, err := metrics.NewPipelineMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["pipelineMetrics"] = err
			return
		}
		c.pipelineMetrics = pipelineMetrics
	})
	if storedErr, exists := c.initErrors["pipelineMetrics"]; exists {
		return nil, storedErr
	}
	return c.pipelineMetrics, nil
}

// RecordSource returns the Knack-backed record source.
func (c *Container) RecordSource() usecase.RecordSource {
	c.recordSourceInit.Do(func() {
		c.recordSource = repository.NewKnackRecordSource(repository.KnackConfig{
			AppID:   c.config.KnackAppID,
			APIKey:  c.config.KnackAPIKey,
			BaseURL: c.config.KnackBaseURL,
			Timeout: c.config.KnackTimeout,
		}, c.Logger())
	})
	return c.recordSource
}

// Renderer returns the message renderer loaded from the configured template file.
func (c *Container) Renderer() (service.Renderer, error) {
	c.rendererInit.Do(func() {
		renderer, err := service.NewTemplateRendererFromFile(c.config.TemplatePath)
		if err != nil {
			c.initErrors["renderer"] = err
			return
		}
		c.renderer = renderer
	})
	if storedErr, exists := c.initErrors["renderer"]; exists {
		return nil, storedErr
	}
	return c.renderer, nil
}

// Deliverer returns the bus delivery client.
func (c *Container) Deliverer() (service.Deliverer, error) {
	c.delivererInit.Do(func() {
		var limiter *rate.Limiter
		if c.config.RateLimitEnabled {
			limiter = rate.NewLimiter(rate.Limit(c.config.RateLimitRequestsPerSec), c.config.RateLimitBurst)
		}
		deliverer, err := service.NewESBDeliveryClient(service.DeliveryConfig{
			Endpoint:      c.config.ESBEndpoint,
			CertFile:      c.config.ESBCertFile,
			KeyFile:       c.config.ESBKeyFile,
			TLSSkipVerify: c.config.ESBTLSSkipVerify,
			Timeout:       c.config.ESBTimeout,
			MaxAttempts:   c.config.ESBMaxAttempts,
			RetryDelay:    c.config.ESBRetryDelay,
		}, limiter, c.Logger())
		if err != nil {
			c.initErrors["deliverer"] = err
			return
		}
		c.deliverer = deliverer
	})
	if storedErr, exists := c.initErrors["deliverer"]; exists {
		return nil, storedErr
	}
	return c.deliverer, nil
}

// PipelineUseCase assembles the relay pipeline for one application profile.
// Unlike the singleton components it is built per call: each invocation binds
// a different profile.
func (c *Container) PipelineUseCase(profileName string) (usecase.UseCase, error) {
	profile, err := domain.ProfileByName(profileName)
	if err != nil {
		return nil, err
	}

	renderer, err := c.Renderer()
	if err != nil {
		return nil, fmt.Errorf("failed to get renderer: %w", err)
	}

	deliverer, err := c.Deliverer()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery client: %w", err)
	}

	pipeline := usecase.NewPipelineUseCase(
		profile,
		c.RecordSource(),
		service.NewRecordTransformer(profile, time.Now),
		renderer,
		deliverer,
		c.Logger(),
	)

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline metrics: %w", err)
	}

	return usecase.NewPipelineUseCaseWithMetrics(pipeline, pipelineMetrics), nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider: %w", err)
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.MetricsHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	// Shutdown metrics server if initialized
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Shutdown metrics provider if initialized
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	// Return combined errors if any occurred
	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
