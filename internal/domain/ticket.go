package domain

import "time"

// TicketPriority enumerates urgency as exposed by the remote list.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityNormal TicketPriority = "Normal"
	TicketPriorityLow    TicketPriority = "Low"
)

// ParsePriority maps a raw priority value onto the enum. Absent or
// unrecognized values default to Normal.
func ParsePriority(raw string) TicketPriority {
	switch raw {
	case string(TicketPriorityHigh), string(TicketPriorityNormal), string(TicketPriorityLow):
		return TicketPriority(raw)
	default:
		return TicketPriorityNormal
	}
}

// Ticket is the canonical representation of one remote list record. It is
// rebuilt wholesale on every fetch cycle and immutable once constructed;
// mutations go to the remote store and appear in the model on the next
// successful fetch.
type Ticket struct {
	// ID is the opaque stable identifier assigned by the remote store and
	// the only key used for mutation calls.
	ID string
	// TicketID is the human-facing sequence code. Display only; not
	// guaranteed unique across schema migrations.
	TicketID      string
	Title         string
	Reason        string
	Details       string
	Priority      TicketPriority
	Status        TicketStatus
	StatusDetails string
	// RaisedBy is the resolved author display name, or a placeholder when
	// resolution failed or the record carried no author reference.
	RaisedBy string
	// Department partitions access. Assigned upstream, consumed read-only.
	Department string
	// AuthorRef is the raw lookup reference the name was resolved from.
	AuthorRef  string
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// ResolutionDuration returns the time between creation and last modification,
// clamped to zero. ModifiedAt is only authoritative for resolution-time once
// the status is terminal; callers gate on Status.IsTerminal.
func (t Ticket) ResolutionDuration() time.Duration {
	if t.CreatedAt.IsZero() || t.ModifiedAt.IsZero() {
		return 0
	}
	d := t.ModifiedAt.Sub(t.CreatedAt)
	if d < 0 {
		return 0
	}
	return d
}

// HasTimestamps reports whether both timestamps are present.
func (t Ticket) HasTimestamps() bool {
	return !t.CreatedAt.IsZero() && !t.ModifiedAt.IsZero()
}
