package service

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/cityops/esb-relay/internal/errors"
)

// Delivery retry defaults; the bus intermittently answers 500 under load and
// recovers within a couple of seconds.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// maxErrorBodyBytes bounds how much of an error response body is carried in
// delivery errors.
const maxErrorBodyBytes = 4096

// DeliveryConfig holds the bus endpoint and retry policy for the delivery client.
type DeliveryConfig struct {
	// Endpoint is the bus URL messages are posted to.
	Endpoint string
	// CertFile and KeyFile are the client certificate pair presented to the
	// bus. Both empty disables client-certificate auth (tests only).
	CertFile string
	KeyFile  string
	// TLSSkipVerify disables server certificate verification; an explicit
	// per-deployment trade-off, never a default.
	TLSSkipVerify bool
	// Timeout is the per-attempt request timeout.
	Timeout time.Duration
	// MaxAttempts is the total number of attempts per message while the bus
	// answers with a server error. Zero means DefaultMaxAttempts.
	MaxAttempts int
	// RetryDelay is the fixed delay between attempts. Zero means DefaultRetryDelay.
	RetryDelay time.Duration
}

// ESBDeliveryClient posts rendered XML messages to the bus over mutually
// authenticated TLS, retrying server errors within a bounded budget. It keeps
// no state between calls; each attempt is exactly one network call.
type ESBDeliveryClient struct {
	config  DeliveryConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewESBDeliveryClient creates a delivery client for the configured endpoint.
// A nil limiter disables send pacing. Returns an error if the client
// certificate pair cannot be loaded.
func NewESBDeliveryClient(
	config DeliveryConfig,
	limiter *rate.Limiter,
	logger *slog.Logger,
) (*ESBDeliveryClient, error) {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultRetryDelay
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: config.TLSSkipVerify, //nolint:gosec // explicit per-deployment setting
	}
	if config.CertFile != "" || config.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(config.CertFile, config.KeyFile)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return &ESBDeliveryClient{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: tlsConfig,
			},
		},
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Deliver posts the payload as text/xml. HTTP 5xx responses are retried up to
// the configured attempt budget with a fixed delay between attempts; any other
// non-2xx status fails immediately with the status and response body. Network
// failures are never retried here: timeouts and connection errors surface
// immediately as their own error kinds so the caller can decide whether to
// re-run the batch.
func (c *ESBDeliveryClient) Deliver(ctx context.Context, payload string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperrors.Wrap(err, "delivery rate limiter")
		}
	}

	for attempt := 1; ; attempt++ {
		status, body, err := c.post(ctx, payload)
		if err != nil {
			return err
		}

		if status >= 200 && status < 300 {
			return nil
		}

		if status >= 500 && attempt < c.config.MaxAttempts {
			c.logger.Warn("bus returned server error, retrying",
				slog.Int("status", status),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", c.config.MaxAttempts),
				slog.Duration("retry_delay", c.config.RetryDelay),
			)
			time.Sleep(c.config.RetryDelay)
			continue
		}

		return apperrors.Wrap(
			apperrors.ErrDelivery,
			fmt.Sprintf("bus returned status %d after %d attempt(s): %s", status, attempt, body),
		)
	}
}

// post performs one network call and returns the response status and body.
func (c *ESBDeliveryClient) post(ctx context.Context, payload string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, strings.NewReader(payload))
	if err != nil {
		return 0, "", apperrors.Wrap(err, "failed to build bus request")
	}
	req.Header.Set("Content-Type", "text/xml")

	res, err := c.client.Do(req)
	if err != nil {
		return 0, "", classifyNetworkError(err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
	if err != nil {
		return 0, "", classifyNetworkError(err)
	}

	return res.StatusCode, string(body), nil
}

// classifyNetworkError maps transport-level failures onto the shared timeout
// and connection-failure sentinels.
func classifyNetworkError(err error) error {
	var urlErr *url.Error
	if apperrors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.Wrap(apperrors.ErrTimeout, urlErr.Error())
	}
	if apperrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrTimeout, err.Error())
	}
	return apperrors.Wrap(apperrors.ErrConnection, err.Error())
}
