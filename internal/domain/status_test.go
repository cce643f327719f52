package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalStatusVariants(t *testing.T) {
	tests := []struct {
		raw  string
		want TicketStatus
	}{
		{"new", StatusOpen},
		{"New", StatusOpen},
		{"NEW", StatusOpen},
		{"open", StatusOpen},
		{"Open", StatusOpen},
		{"In Progress", StatusInProgress},
		{"In-progress", StatusInProgress},
		{"in-PROGRESS", StatusInProgress},
		{"in progress", StatusInProgress},
		{"Pending", StatusPending},
		{"On Hold", StatusOnHold},
		{"on-hold", StatusOnHold},
		{"Partially Resolved - Under Observation", StatusPartiallyResolved},
		{"partially resolved", StatusPartiallyResolved},
		{"Resolved", StatusResolved},
		{"Closed", StatusClosed},
		{"Closed - Wrong Department", StatusClosedWrongDept},
		{"  Resolved  ", StatusResolved},
		{"", StatusUnknown},
		{"something else", StatusUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalStatus(tt.raw), "raw %q", tt.raw)
	}
}

func TestDisplayLabelRoundTrip(t *testing.T) {
	all := []TicketStatus{
		StatusOpen, StatusInProgress, StatusPending, StatusOnHold,
		StatusPartiallyResolved, StatusResolved, StatusClosed,
		StatusClosedWrongDept, StatusUnknown,
	}
	for _, status := range all {
		assert.Equal(t, status, CanonicalStatus(status.DisplayLabel()), "status %s", status)
	}
}

func TestCountBucket(t *testing.T) {
	assert.Equal(t, BucketPending, StatusOpen.CountBucket())
	assert.Equal(t, BucketPending, StatusInProgress.CountBucket())
	assert.Equal(t, BucketPending, StatusPending.CountBucket())
	assert.Equal(t, BucketResolved, StatusResolved.CountBucket())
	assert.Equal(t, BucketResolved, StatusClosed.CountBucket())
	assert.Equal(t, BucketOther, StatusOnHold.CountBucket())
	assert.Equal(t, BucketOther, StatusPartiallyResolved.CountBucket())
	assert.Equal(t, BucketOther, StatusClosedWrongDept.CountBucket())
	assert.Equal(t, BucketOther, StatusUnknown.CountBucket())
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusClosedWrongDept.IsTerminal())
	assert.False(t, StatusOpen.IsTerminal())
}

func TestParsePriorityDefaultsToNormal(t *testing.T) {
	assert.Equal(t, TicketPriorityHigh, ParsePriority("High"))
	assert.Equal(t, TicketPriorityLow, ParsePriority("Low"))
	assert.Equal(t, TicketPriorityNormal, ParsePriority(""))
	assert.Equal(t, TicketPriorityNormal, ParsePriority("Critical"))
}
