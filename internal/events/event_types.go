package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketsRefreshed  EventType = "tickets_refreshed"
	EventNewTicketsArrived EventType = "new_tickets_arrived"
	EventRefreshFailed     EventType = "refresh_failed"
	EventTicketUpdated     EventType = "ticket_updated"
)

// Event represents an engine event delivered to consumers.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with an id and timestamp.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// TicketsRefreshedPayload marks a completed fetch cycle. Manual cycles are
// confirmed to the user unconditionally; ambient ones stay quiet.
type TicketsRefreshedPayload struct {
	Total  int  `json:"total"`
	Manual bool `json:"manual"`
}

// NewTicketsArrivedPayload carries the strictly-increasing count delta
// detected against the previous non-empty snapshot.
type NewTicketsArrivedPayload struct {
	Count int `json:"count"`
}

// RefreshFailedPayload carries the classified failure of an aborted cycle.
// The previous snapshot stays visible.
type RefreshFailedPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// TicketUpdatedPayload marks a successful single-field patch. The change
// becomes visible in the canonical model on the next successful fetch.
type TicketUpdatedPayload struct {
	TicketID string              `json:"ticket_id"`
	Field    string              `json:"field"`
	Status   domain.TicketStatus `json:"status,omitempty"`
}
