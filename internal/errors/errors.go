// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by the relay
// components and mapped to process exit codes by the CLI commands.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all relay components.
var (
	// ErrConfiguration indicates the runtime configuration is incomplete or stale
	// (e.g., an activity name with no entry in the profile's code table).
	ErrConfiguration = errors.New("configuration error")

	// ErrTemplate indicates the message template references a field the
	// outbound message does not carry.
	ErrTemplate = errors.New("template error")

	// ErrDelivery indicates the bus rejected a message or retries were exhausted.
	ErrDelivery = errors.New("delivery error")

	// ErrTimeout indicates a network timeout while talking to the bus.
	ErrTimeout = errors.New("timeout")

	// ErrConnection indicates a DNS or connection-level failure before any
	// HTTP status was received.
	ErrConnection = errors.New("connection failure")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
