// Package domain defines the core relay domain models: application profiles,
// raw records from the record store, and the outbound message built per record.
package domain

import (
	validation "github.com/jellydator/validation"

	apperrors "github.com/cityops/esb-relay/internal/errors"
	appvalidation "github.com/cityops/esb-relay/internal/validation"
)

// Logical field names shared by every application profile. The message
// template and the transformer address record values by these names, never
// by raw Knack field identifiers.
const (
	FieldID                      = "id"
	FieldActivityID              = "atd_activity_id"
	FieldEmiID                   = "emi_id"
	FieldSRNumber                = "sr_number"
	FieldIssueStatusCodeSnapshot = "issue_status_code_snapshot"
	FieldESBStatus               = "esb_status"
	FieldActivityDatetime        = "activity_datetime"
	FieldActivityDetails         = "activity_details"
	FieldActivityName            = "activity_name"
	FieldCSRActivityID           = "csr_activity_id"
	FieldCSRActivityCode         = "csr_activity_code"

	// FieldPublicationDatetime is computed at transform time; it is never a
	// record store field.
	FieldPublicationDatetime = "publication_datetime"
)

// LogicalFields lists every logical field a profile's field map must cover.
var LogicalFields = []string{
	FieldID,
	FieldActivityID,
	FieldEmiID,
	FieldSRNumber,
	FieldIssueStatusCodeSnapshot,
	FieldESBStatus,
	FieldActivityDatetime,
	FieldActivityDetails,
	FieldActivityName,
	FieldCSRActivityID,
	FieldCSRActivityCode,
}

// Suppressed marks an activity name that must never be sent to the bus.
// Records resolving to it are written back as DO_NOT_SEND instead.
const Suppressed = ""

// FieldMap maps logical field names to record store field identifiers.
type FieldMap map[string]string

// ActivityCodeTable maps free-text activity names to fixed CSR activity codes.
// A value of Suppressed marks the activity as do-not-send; a missing key is a
// configuration error, not a runtime-recoverable condition.
type ActivityCodeTable map[string]string

// ApplicationProfile is the immutable per-subsystem configuration: which
// record store object and view to operate on, how logical field names map to
// field identifiers, and how activity names map to CSR activity codes.
type ApplicationProfile struct {
	// Name is the profile selector passed on the command line.
	Name string
	// ObjectID is the record store object updates are written to.
	ObjectID string
	// ViewID is the record store view records are queried from.
	ViewID string
	// Fields maps logical field names to field identifiers.
	Fields FieldMap
	// ActivityCodes maps activity names to CSR activity codes.
	ActivityCodes ActivityCodeTable
}

// Validate performs the load-time completeness check: every logical field
// mapped to a well-formed field identifier, object/view identifiers
// well-formed, and every activity-code value either the suppress marker or a
// real CSR code. Returns an error wrapping ErrInvalidProfile on failure.
func (p *ApplicationProfile) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.ObjectID, validation.Required, appvalidation.KnackObjectID{}),
		validation.Field(&p.ViewID, validation.Required, appvalidation.KnackViewID{}),
		validation.Field(&p.Fields, validation.Required),
		validation.Field(&p.ActivityCodes, validation.Required),
	)
	if err != nil {
		return apperrors.Wrap(ErrInvalidProfile, err.Error())
	}

	for _, name := range LogicalFields {
		fieldID, ok := p.Fields[name]
		if !ok || fieldID == "" {
			return apperrors.Wrap(ErrInvalidProfile, "field map is missing logical field "+name)
		}
		if err := (appvalidation.KnackFieldID{}).Validate(fieldID); err != nil {
			return apperrors.Wrap(ErrInvalidProfile, "field "+name+": "+err.Error())
		}
	}

	for activityName, code := range p.ActivityCodes {
		if code == Suppressed {
			continue
		}
		if err := (appvalidation.ActivityCode{}).Validate(code); err != nil {
			return apperrors.Wrap(ErrInvalidProfile, "activity "+activityName+": "+err.Error())
		}
	}

	return nil
}
