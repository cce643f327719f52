package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
	"github.com/openmind-services/helpdesk-dashboard/internal/graph"
)

func rawRecord(id string, fields map[string]any) graph.RawRecord {
	return graph.RawRecord{ID: id, Fields: fields}
}

func TestBuildTicketsAuthorFallbacks(t *testing.T) {
	records := []graph.RawRecord{
		rawRecord("1", map[string]any{"AuthorLookupId": "7", "Status": "Open"}),
		rawRecord("2", map[string]any{"AuthorLookupId": "8", "Status": "Open"}),
		rawRecord("3", map[string]any{"Status": "Open"}),
	}
	names := map[string]string{"7": "Reena Sharma"}

	tickets := BuildTickets(records, names)
	require.Len(t, tickets, 3)

	byID := map[string]domain.Ticket{}
	for _, ticket := range tickets {
		byID[ticket.ID] = ticket
	}
	assert.Equal(t, "Reena Sharma", byID["1"].RaisedBy)
	assert.Equal(t, "User ID: 8", byID["2"].RaisedBy)
	assert.Equal(t, "Not specified", byID["3"].RaisedBy)
}

func TestBuildTicketsCanonicalizesAndDefaults(t *testing.T) {
	records := []graph.RawRecord{
		rawRecord("1", map[string]any{
			"TicketID":      "TKT-009",
			"TicketTitle":   "Laptop slow",
			"TicketReason":  "Hardware",
			"Status":        "in-progress",
			"StatusDetails": "Diagnostics running",
			"Department":    "IT Team",
			"Created":       "2024-02-01T08:00:00Z",
			"Modified":      "2024-02-01T09:00:00Z",
		}),
	}

	tickets := BuildTickets(records, nil)
	require.Len(t, tickets, 1)

	ticket := tickets[0]
	assert.Equal(t, domain.StatusInProgress, ticket.Status)
	assert.Equal(t, domain.TicketPriorityNormal, ticket.Priority)
	assert.Equal(t, "TKT-009", ticket.TicketID)
	assert.Equal(t, "Laptop slow", ticket.Title)
	assert.Equal(t, "Diagnostics running", ticket.StatusDetails)
	assert.Equal(t, "IT Team", ticket.Department)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), ticket.CreatedAt)
}

func TestBuildTicketsItemTimestampFallback(t *testing.T) {
	record := graph.RawRecord{
		ID:                   "1",
		CreatedDateTime:      "2024-03-01T10:00:00Z",
		LastModifiedDateTime: "2024-03-02T10:00:00Z",
		Fields:               map[string]any{"Status": "Open"},
	}

	tickets := BuildTickets([]graph.RawRecord{record}, nil)
	require.Len(t, tickets, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), tickets[0].CreatedAt)
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), tickets[0].ModifiedAt)
}

func TestBuildTicketsSortedNewestFirst(t *testing.T) {
	records := []graph.RawRecord{
		rawRecord("old", map[string]any{"Created": "2024-01-01T00:00:00Z"}),
		rawRecord("new", map[string]any{"Created": "2024-06-01T00:00:00Z"}),
		rawRecord("mid", map[string]any{"Created": "2024-03-01T00:00:00Z"}),
	}

	tickets := BuildTickets(records, nil)
	require.Len(t, tickets, 3)
	assert.Equal(t, "new", tickets[0].ID)
	assert.Equal(t, "mid", tickets[1].ID)
	assert.Equal(t, "old", tickets[2].ID)
}

func TestBuildTicketsDeterministic(t *testing.T) {
	records := []graph.RawRecord{
		rawRecord("1", map[string]any{"Status": "new", "AuthorLookupId": float64(5)}),
		rawRecord("2", map[string]any{"Status": "Resolved"}),
	}
	names := map[string]string{"5": "Ajay"}

	first := BuildTickets(records, names)
	second := BuildTickets(records, names)
	assert.Equal(t, first, second)
}
