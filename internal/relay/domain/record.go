package domain

import (
	"strconv"
	"strings"
)

// DeliveryStatus is the per-record delivery state stored in the record store's
// esb_status field. It is the only durable state a run transitions.
type DeliveryStatus string

const (
	// StatusReadyToSend marks a record as eligible for the next run.
	StatusReadyToSend DeliveryStatus = "READY_TO_SEND"
	// StatusSent marks a record as successfully delivered to the bus.
	StatusSent DeliveryStatus = "SENT"
	// StatusDoNotSend marks a record whose activity is suppressed; it is never sent.
	StatusDoNotSend DeliveryStatus = "DO_NOT_SEND"
)

// Issue status snapshot values with special outbound handling. The bus has no
// duplicate-issue status, so duplicates go out as resolved; the record store
// keeps tracking them as duplicates.
const (
	IssueStatusClosedDuplicate = "closed_duplicate"
	IssueStatusClosedResolved  = "closed_resolved"
)

// RawRecord is an opaque record from the record store, keyed by field
// identifiers rather than logical names. Values are already flattened to
// strings; absent fields read as "".
type RawRecord struct {
	// ID is the record store's record identifier, used for status write-back.
	ID string
	// Fields holds the record values keyed by field identifier.
	Fields map[string]string
}

// Field returns the value for a field identifier, or "" when absent.
func (r *RawRecord) Field(fieldID string) string {
	return r.Fields[fieldID]
}

// OutboundMessage is the transient per-record payload fed to the message
// template: logical field names mapped to stringified values, plus the
// computed publication_datetime. Created fresh per record and never persisted.
type OutboundMessage struct {
	// Fields holds the template values keyed by logical field name.
	Fields map[string]string
	// Suppressed reports that the record's activity resolved to the suppress
	// marker; the message carries no CSR activity code and must not be sent.
	Suppressed bool
}

// Field returns the value for a logical field name, or "" when absent.
func (m *OutboundMessage) Field(name string) string {
	return m.Fields[name]
}

// FilterOperator is a record store field predicate operator.
type FilterOperator string

const (
	FilterIsNotBlank FilterOperator = "is not blank"
	FilterIs         FilterOperator = "is"
)

// FilterRule is a single field-level predicate.
type FilterRule struct {
	FieldID  string
	Operator FilterOperator
	Value    string
}

// Filter is a conjunction of field-level predicates evaluated by the record store.
type Filter struct {
	Rules []FilterRule
}

// ReadyToSendFilter selects the records eligible for a run: a non-blank
// emi_id and an esb_status of READY_TO_SEND.
func ReadyToSendFilter(profile *ApplicationProfile) Filter {
	return Filter{
		Rules: []FilterRule{
			{FieldID: profile.Fields[FieldEmiID], Operator: FilterIsNotBlank},
			{FieldID: profile.Fields[FieldESBStatus], Operator: FilterIs, Value: string(StatusReadyToSend)},
		},
	}
}

// CompareActivityIDs orders two activity identifiers ascending, lowest (oldest)
// first. Identifiers are numeric in live data but arrive as strings; both
// sides are compared numerically when possible so "102" sorts after "99", with
// a plain string comparison as the fallback for non-numeric data.
func CompareActivityIDs(a, b string) int {
	na, errA := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	nb, errB := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
