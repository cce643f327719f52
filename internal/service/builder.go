package service

import (
	"sort"
	"time"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
	"github.com/openmind-services/helpdesk-dashboard/internal/graph"
	"github.com/openmind-services/helpdesk-dashboard/internal/schema"
)

// Author fallback labels when a reference is missing or unresolved.
const (
	raisedByUnspecified  = "Not specified"
	raisedByRawRefPrefix = "User ID: "
)

// BuildTickets composes raw records and the cycle's resolved names into
// canonical tickets. Pure: deterministic for identical inputs, no hidden
// state. Output is sorted by creation time, newest first.
func BuildTickets(records []graph.RawRecord, names map[string]string) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(records))
	for _, record := range records {
		tickets = append(tickets, buildTicket(record, names))
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets
}

func buildTicket(record graph.RawRecord, names map[string]string) domain.Ticket {
	fields := record.Fields
	normalized := schema.Normalize(fields)
	ref := schema.AuthorRef(fields)

	return domain.Ticket{
		ID:            record.ID,
		TicketID:      normalized.TicketID,
		Title:         normalized.Title,
		Reason:        normalized.Reason,
		Details:       schema.GenericTitle(fields),
		Priority:      domain.ParsePriority(schema.PriorityRaw(fields)),
		Status:        domain.CanonicalStatus(schema.StatusRaw(fields)),
		StatusDetails: normalized.StatusDetails,
		RaisedBy:      raisedBy(ref, names),
		Department:    schema.Department(fields),
		AuthorRef:     ref,
		CreatedAt:     parseTimestamp(schema.CreatedRaw(fields), record.CreatedDateTime),
		ModifiedAt:    parseTimestamp(schema.ModifiedRaw(fields), record.LastModifiedDateTime),
	}
}

func raisedBy(ref string, names map[string]string) string {
	if ref == "" {
		return raisedByUnspecified
	}
	if name, ok := names[ref]; ok && name != "" {
		return name
	}
	return raisedByRawRefPrefix + ref
}

// parseTimestamp takes the field-level timestamp when present and falls back
// to the item metadata. Unparseable values yield the zero time; aggregation
// treats those as absent rather than failing.
func parseTimestamp(fieldValue, itemValue string) time.Time {
	for _, raw := range []string{fieldValue, itemValue} {
		if raw == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
