package service

import (
	apperrors "github.com/cityops/esb-relay/internal/errors"
	"github.com/cityops/esb-relay/internal/relay/domain"
)

// ResolveActivityCode maps a free-text activity name to its fixed CSR
// activity code. Returns suppressed=true when the table marks the activity as
// do-not-send. A name absent from the table means the table is stale relative
// to live data; that is a configuration error, not a recoverable condition.
func ResolveActivityCode(
	activityName string,
	table domain.ActivityCodeTable,
) (code string, suppressed bool, err error) {
	mapped, ok := table[activityName]
	if !ok {
		return "", false, apperrors.Wrap(domain.ErrUnmappedActivity, activityName)
	}
	if mapped == domain.Suppressed {
		return "", true, nil
	}
	return mapped, false, nil
}
