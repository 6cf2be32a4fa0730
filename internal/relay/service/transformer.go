package service

import (
	"strings"
	"time"

	"github.com/cityops/esb-relay/internal/relay/domain"
)

// xmlEscaper substitutes the five XML-significant characters with their
// entity forms in a single pass. A single multi-pattern pass is load-bearing:
// it cannot re-escape the ampersands of entities it just produced, which a
// sequential per-character replace would.
var xmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"&", "&amp;",
)

// RecordTransformer builds outbound messages from raw records using an
// application profile's field map and activity-code table.
type RecordTransformer struct {
	profile *domain.ApplicationProfile
	now     func() time.Time
}

// NewRecordTransformer creates a new RecordTransformer. The clock stamps each
// message's publication_datetime.
func NewRecordTransformer(profile *domain.ApplicationProfile, now func() time.Time) *RecordTransformer {
	return &RecordTransformer{
		profile: profile,
		now:     now,
	}
}

// Transform projects every logical field through the profile's field map,
// sanitizes activity_details for XML, resolves the CSR activity code when the
// record carries none, normalizes the duplicate issue status, and stamps
// publication_datetime. Returns a message flagged Suppressed for do-not-send
// activities, or a configuration error for an unmapped activity name.
func (t *RecordTransformer) Transform(record *domain.RawRecord) (*domain.OutboundMessage, error) {
	fields := make(map[string]string, len(t.profile.Fields)+1)
	// Absent or blank source values become "" so template substitution never
	// sees a missing key.
	for name, fieldID := range t.profile.Fields {
		fields[name] = record.Field(fieldID)
	}

	fields[domain.FieldActivityDetails] = sanitizeDetails(fields[domain.FieldActivityDetails])

	message := &domain.OutboundMessage{Fields: fields}

	// Only paging activities arrive with a CSR activity code already set;
	// everything else goes through the code table.
	if fields[domain.FieldCSRActivityCode] == "" {
		code, suppressed, err := ResolveActivityCode(fields[domain.FieldActivityName], t.profile.ActivityCodes)
		if err != nil {
			return nil, err
		}
		fields[domain.FieldCSRActivityCode] = code
		message.Suppressed = suppressed
	}

	// The bus has no duplicate-issue status; a duplicate marker would corrupt
	// the downstream issue. Duplicates go out as resolved and stay tracked as
	// duplicates in the record store.
	if fields[domain.FieldIssueStatusCodeSnapshot] == domain.IssueStatusClosedDuplicate {
		fields[domain.FieldIssueStatusCodeSnapshot] = domain.IssueStatusClosedResolved
	}

	fields[domain.FieldPublicationDatetime] = t.now().Format(time.RFC3339)

	return message, nil
}

// sanitizeDetails drops every character outside 7-bit ASCII, then escapes the
// XML-significant characters. Non-ASCII characters are removed, never replaced
// with substitution glyphs; stripping first keeps the escape pass operating on
// original characters only.
func sanitizeDetails(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return xmlEscaper.Replace(b.String())
}
