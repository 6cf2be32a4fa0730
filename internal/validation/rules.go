// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"

	validation "github.com/jellydator/validation"

	apperrors "github.com/cityops/esb-relay/internal/errors"
)

var (
	// objectIDRegex matches Knack object identifiers (e.g., "object_75").
	objectIDRegex = regexp.MustCompile(`^object_\d+$`)

	// viewIDRegex matches Knack view identifiers (e.g., "view_1653").
	viewIDRegex = regexp.MustCompile(`^view_\d+$`)

	// fieldIDRegex matches Knack field identifiers (e.g., "field_1051"). The
	// record identifier is the one field the API exposes under a bare "id".
	fieldIDRegex = regexp.MustCompile(`^(id|field_\d+)$`)

	// activityCodeRegex matches CSR activity codes ("CLOIS001", "311FEEDB",
	// "CONTACT"). Placeholder or lowercase values fail the profile check.
	activityCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// KnackObjectID validates that a value is a well-formed Knack object identifier.
type KnackObjectID struct{}

// Validate checks the value against the object identifier shape.
func (KnackObjectID) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_object_id", "object identifier must be a string")
	}
	if !objectIDRegex.MatchString(s) {
		return validation.NewError("validation_object_id", "must be a Knack object identifier (object_N)")
	}
	return nil
}

// KnackViewID validates that a value is a well-formed Knack view identifier.
type KnackViewID struct{}

// Validate checks the value against the view identifier shape.
func (KnackViewID) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_view_id", "view identifier must be a string")
	}
	if !viewIDRegex.MatchString(s) {
		return validation.NewError("validation_view_id", "must be a Knack view identifier (view_N)")
	}
	return nil
}

// KnackFieldID validates that a value is a well-formed Knack field identifier.
type KnackFieldID struct{}

// Validate checks the value against the field identifier shape.
func (KnackFieldID) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_field_id", "field identifier must be a string")
	}
	if !fieldIDRegex.MatchString(s) {
		return validation.NewError("validation_field_id", "must be a Knack field identifier (id or field_N)")
	}
	return nil
}

// ActivityCode validates that a value is a well-formed CSR activity code.
type ActivityCode struct{}

// Validate checks the value against the CSR activity code shape.
func (ActivityCode) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_activity_code", "activity code must be a string")
	}
	if !activityCodeRegex.MatchString(s) {
		return validation.NewError(
			"validation_activity_code",
			"must be an uppercase alphanumeric CSR activity code",
		)
	}
	return nil
}
