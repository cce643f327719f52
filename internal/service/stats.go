package service

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
)

// statusOrder fixes the breakdown ordering for charts.
var statusOrder = []domain.TicketStatus{
	domain.StatusOpen,
	domain.StatusInProgress,
	domain.StatusPending,
	domain.StatusOnHold,
	domain.StatusPartiallyResolved,
	domain.StatusResolved,
	domain.StatusClosed,
	domain.StatusClosedWrongDept,
	domain.StatusUnknown,
}

var priorityOrder = []domain.TicketPriority{
	domain.TicketPriorityHigh,
	domain.TicketPriorityNormal,
	domain.TicketPriorityLow,
}

// Aggregate computes the derived statistics over a filtered ticket set.
// Pure and stateless; recomputed per filter cycle. topReasons bounds the
// reason grouping (the summary and report views use different values).
func Aggregate(tickets []domain.Ticket, topReasons int) domain.AggregateStats {
	stats := domain.AggregateStats{Total: len(tickets)}

	statusCounts := make(map[domain.TicketStatus]int)
	priorityCounts := make(map[domain.TicketPriority]int)
	reasonCounts := make(map[string]int)

	for _, t := range tickets {
		statusCounts[t.Status]++
		priorityCounts[t.Priority]++
		if reason := strings.TrimSpace(t.Reason); reason != "" {
			reasonCounts[reason]++
		}

		switch t.Status.CountBucket() {
		case domain.BucketResolved:
			stats.Resolved++
		case domain.BucketPending:
			stats.Pending++
		}
	}

	stats.Open = statusCounts[domain.StatusOpen]
	stats.InProgress = statusCounts[domain.StatusInProgress]
	stats.OnHold = statusCounts[domain.StatusOnHold]
	stats.Closed = statusCounts[domain.StatusClosed]
	stats.AvgResolutionHours = avgResolutionHours(tickets)

	for _, status := range statusOrder {
		if count := statusCounts[status]; count > 0 {
			stats.ByStatus = append(stats.ByStatus, domain.GroupCount{Name: status.DisplayLabel(), Count: count})
		}
	}
	for _, priority := range priorityOrder {
		if count := priorityCounts[priority]; count > 0 {
			stats.ByPriority = append(stats.ByPriority, domain.GroupCount{Name: string(priority), Count: count})
		}
	}
	stats.ByReason = topReasonGroups(reasonCounts, topReasons)

	return stats
}

// avgResolutionHours averages (modifiedAt - createdAt) in hours over tickets
// with a terminal status and both timestamps present. Negative durations are
// clamped to zero before averaging. Returns "0" when no ticket qualifies,
// otherwise a string with one decimal.
func avgResolutionHours(tickets []domain.Ticket) string {
	var hours []float64
	for _, t := range tickets {
		if !t.Status.IsTerminal() || !t.HasTimestamps() {
			continue
		}
		hours = append(hours, t.ResolutionDuration().Hours())
	}
	if len(hours) == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", stat.Mean(hours, nil))
}

// topReasonGroups sorts reasons by descending count (name ascending on ties,
// for stable chart output) and truncates to n.
func topReasonGroups(counts map[string]int, n int) []domain.GroupCount {
	groups := make([]domain.GroupCount, 0, len(counts))
	for name, count := range counts {
		groups = append(groups, domain.GroupCount{Name: name, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Name < groups[j].Name
	})
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}
