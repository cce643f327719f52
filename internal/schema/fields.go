// Package schema absorbs drift across remote list configuration revisions.
// The same logical field appears under different raw names depending on when
// the list column was created (space-encoded legacy names vs renamed modern
// ones); each logical field is expressed as an ordered candidate list and the
// first non-empty value wins.
package schema

import (
	"strconv"
	"strings"
)

// Raw field candidates per logical field, in precedence order.
var (
	ticketIDFields      = []string{"TicketID", "Ticket_x0020_ID"}
	titleFields         = []string{"TicketTitle", "Ticket_x0020_Title", "Title"}
	reasonFields        = []string{"TicketReason", "Ticket_x0020_Reason"}
	statusDetailsFields = []string{"StatusDetails", "Status_x0020_Details"}
)

// Normalized carries the schema-independent view of one raw record's
// drift-prone fields.
type Normalized struct {
	TicketID      string
	Title         string
	Reason        string
	StatusDetails string
}

// Normalize selects canonical values for the drift-prone fields of a raw
// record's field map.
func Normalize(fields map[string]any) Normalized {
	return Normalized{
		TicketID:      firstNonEmpty(fields, ticketIDFields),
		Title:         firstNonEmpty(fields, titleFields),
		Reason:        firstNonEmpty(fields, reasonFields),
		StatusDetails: firstNonEmpty(fields, statusDetailsFields),
	}
}

// Stable single-name accessors for the remaining fields the engine consumes.

// StatusRaw returns the unnormalized status string.
func StatusRaw(fields map[string]any) string {
	return stringValue(fields["Status"])
}

// PriorityRaw returns the unnormalized priority string.
func PriorityRaw(fields map[string]any) string {
	return stringValue(fields["Priority"])
}

// Department returns the owning department.
func Department(fields map[string]any) string {
	return stringValue(fields["Department"])
}

// GenericTitle returns the list's generic title column regardless of the
// ticket-title precedence chain.
func GenericTitle(fields map[string]any) string {
	return stringValue(fields["Title"])
}

// AuthorRef returns the opaque author lookup reference, or "" when the record
// carries none. The store serializes it as either a string or a number.
func AuthorRef(fields map[string]any) string {
	return stringValue(fields["AuthorLookupId"])
}

// CreatedRaw returns the field-level created timestamp, if present.
func CreatedRaw(fields map[string]any) string {
	return stringValue(fields["Created"])
}

// ModifiedRaw returns the field-level modified timestamp, if present.
func ModifiedRaw(fields map[string]any) string {
	return stringValue(fields["Modified"])
}

func firstNonEmpty(fields map[string]any, names []string) string {
	for _, name := range names {
		if v := stringValue(fields[name]); v != "" {
			return v
		}
	}
	return ""
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		// JSON numbers decode as float64; lookup ids are integral.
		return strconv.FormatInt(int64(val), 10)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}
