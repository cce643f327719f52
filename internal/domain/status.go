package domain

import "strings"

// TicketStatus is the canonical lifecycle state. Raw values from the store
// vary lexically across schema revisions; CanonicalStatus maps them all onto
// this enum before any other component touches them.
type TicketStatus string

const (
	StatusOpen              TicketStatus = "OPEN"
	StatusInProgress        TicketStatus = "IN_PROGRESS"
	StatusPending           TicketStatus = "PENDING"
	StatusOnHold            TicketStatus = "ON_HOLD"
	StatusPartiallyResolved TicketStatus = "PARTIALLY_RESOLVED"
	StatusResolved          TicketStatus = "RESOLVED"
	StatusClosed            TicketStatus = "CLOSED"
	StatusClosedWrongDept   TicketStatus = "CLOSED_WRONG_DEPT"
	StatusUnknown           TicketStatus = "UNKNOWN"
)

// CountBucket is the top-line metric bucket a status counts toward.
type CountBucket string

const (
	BucketResolved CountBucket = "resolved"
	BucketPending  CountBucket = "pending"
	BucketOther    CountBucket = "other"
)

// CanonicalStatus maps a raw store value onto the enum, case-insensitively.
// Known lexical variants (hyphenated vs spaced "in progress", legacy "new")
// collapse onto one value; unrecognized input maps to StatusUnknown rather
// than failing.
func CanonicalStatus(raw string) TicketStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "new", "open":
		return StatusOpen
	case "in progress", "in-progress":
		return StatusInProgress
	case "pending":
		return StatusPending
	case "on hold", "on-hold":
		return StatusOnHold
	case "partially resolved", "partially resolved - under observation":
		return StatusPartiallyResolved
	case "resolved":
		return StatusResolved
	case "closed":
		return StatusClosed
	case "closed - wrong department", "closed wrong department":
		return StatusClosedWrongDept
	default:
		return StatusUnknown
	}
}

// DisplayLabel is the human-facing label for the status. Round-trips:
// CanonicalStatus(s.DisplayLabel()) == s for every enum value.
func (s TicketStatus) DisplayLabel() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusInProgress:
		return "In Progress"
	case StatusPending:
		return "Pending"
	case StatusOnHold:
		return "On Hold"
	case StatusPartiallyResolved:
		return "Partially Resolved - Under Observation"
	case StatusResolved:
		return "Resolved"
	case StatusClosed:
		return "Closed"
	case StatusClosedWrongDept:
		return "Closed - Wrong Department"
	default:
		return "Unknown"
	}
}

// CountBucket classifies the status for top-line counting. Open (including
// legacy "new"), In Progress and Pending all count as pending work;
// Resolved and Closed count as resolved.
func (s TicketStatus) CountBucket() CountBucket {
	switch s {
	case StatusResolved, StatusClosed:
		return BucketResolved
	case StatusOpen, StatusInProgress, StatusPending:
		return BucketPending
	default:
		return BucketOther
	}
}

// IsTerminal reports whether resolution time may be computed for the status.
func (s TicketStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}
