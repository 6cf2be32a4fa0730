// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// KnackAppID is the application identifier for the Knack record store.
	KnackAppID string
	// KnackAPIKey is the REST API key for the Knack record store.
	KnackAPIKey string
	// KnackBaseURL is the base URL of the Knack records API.
	KnackBaseURL string
	// KnackTimeout is the per-request timeout for record store calls.
	KnackTimeout time.Duration

	// ESBEndpoint is the URL the rendered XML messages are posted to.
	ESBEndpoint string
	// ESBCertFile is the path to the client certificate presented to the bus.
	ESBCertFile string
	// ESBKeyFile is the path to the client certificate's private key.
	ESBKeyFile string
	// ESBTLSSkipVerify disables server certificate verification. Some ESB
	// deployments run with certificates the relay host cannot verify; enabling
	// this is a per-deployment decision, never a default.
	ESBTLSSkipVerify bool
	// ESBTimeout is the per-attempt timeout for bus deliveries.
	ESBTimeout time.Duration
	// ESBMaxAttempts is the total number of delivery attempts per message
	// when the bus answers with a server error.
	ESBMaxAttempts int
	// ESBRetryDelay is the fixed delay between delivery attempts.
	ESBRetryDelay time.Duration

	// RateLimitEnabled indicates whether outbound deliveries are paced.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of deliveries allowed per second.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for delivery pacing.
	RateLimitBurst int

	// TemplatePath is the path to the XML message template file.
	TemplatePath string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// MetricsEnabled indicates whether the metrics endpoint is served during a run.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsHost is the host address the metrics server will bind to.
	MetricsHost string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Record store (Knack)
		KnackAppID:   env.GetString("KNACK_APP_ID", ""),
		KnackAPIKey:  env.GetString("KNACK_API_KEY", ""),
		KnackBaseURL: env.GetString("KNACK_BASE_URL", "https://api.knack.com/v1"),
		KnackTimeout: env.GetDuration("KNACK_TIMEOUT_SECONDS", 30, time.Second),

		// Enterprise service bus
		ESBEndpoint:      env.GetString("ESB_ENDPOINT", ""),
		ESBCertFile:      env.GetString("ESB_CERT_FILE", "certs/esb.cert"),
		ESBKeyFile:       env.GetString("ESB_KEY_FILE", "certs/esb.pem"),
		ESBTLSSkipVerify: env.GetBool("ESB_TLS_SKIP_VERIFY", false),
		ESBTimeout:       env.GetDuration("ESB_TIMEOUT_SECONDS", 20, time.Second),
		ESBMaxAttempts:   env.GetInt("ESB_MAX_ATTEMPTS", 3),
		ESBRetryDelay:    env.GetDuration("ESB_RETRY_DELAY_SECONDS", 2, time.Second),

		// Delivery pacing
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 5.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 1),

		// Message template
		TemplatePath: env.GetString("TEMPLATE_PATH", "templates/esb_message.xml"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "esb_relay"),
		MetricsHost:      env.GetString("METRICS_HOST", "0.0.0.0"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
