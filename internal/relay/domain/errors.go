package domain

import (
	"github.com/cityops/esb-relay/internal/errors"
)

// Relay-specific error definitions.
var (
	// ErrUnknownProfile indicates the requested application profile does not exist.
	ErrUnknownProfile = errors.Wrap(errors.ErrConfiguration, "unknown application profile")

	// ErrInvalidProfile indicates an application profile failed its load-time
	// completeness check.
	ErrInvalidProfile = errors.Wrap(errors.ErrConfiguration, "invalid application profile")

	// ErrUnmappedActivity indicates a record carries an activity name with no
	// entry in the profile's activity-code table. The table is stale; the run
	// must not proceed past it.
	ErrUnmappedActivity = errors.Wrap(errors.ErrConfiguration, "activity name has no CSR activity code mapping")
)
