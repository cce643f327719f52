package service

import (
	"time"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
)

// StatusFilterAll passes every ticket through the status filter.
const StatusFilterAll = "All"

// FilterByDateRange keeps tickets created within [start, end-of-day(end)]
// inclusive. Feeds the summary/stat view only; the list view intentionally
// shows full history regardless of the date filter.
func FilterByDateRange(tickets []domain.Ticket, start, end time.Time) []domain.Ticket {
	cutoff := endOfDay(end)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.CreatedAt.Before(start) || t.CreatedAt.After(cutoff) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterByStatus keeps tickets whose canonical status matches the raw filter
// value. The value is canonicalized first, so a filter of "In-progress"
// selects tickets stored under either lexical variant of "in progress" and
// no others. "All" or an empty value passes everything through.
func FilterByStatus(tickets []domain.Ticket, rawStatus string) []domain.Ticket {
	if rawStatus == "" || rawStatus == StatusFilterAll {
		return tickets
	}

	want := domain.CanonicalStatus(rawStatus)
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Status == want {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDepartment partitions by the owning department. An empty
// department disables partitioning.
func FilterByDepartment(tickets []domain.Ticket, department string) []domain.Ticket {
	if department == "" {
		return tickets
	}
	out := make([]domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if t.Department == department {
			out = append(out, t)
		}
	}
	return out
}

// endOfDay extends a date to 23:59:59.999999999 in its own location so the
// range check stays inclusive of the end date.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
