package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolutionDurationClampsNegative(t *testing.T) {
	created := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	ticket := Ticket{CreatedAt: created, ModifiedAt: modified}
	assert.Equal(t, time.Duration(0), ticket.ResolutionDuration())
}

func TestResolutionDurationMissingTimestamps(t *testing.T) {
	assert.Equal(t, time.Duration(0), Ticket{}.ResolutionDuration())
	assert.False(t, Ticket{}.HasTimestamps())

	ticket := Ticket{
		CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, ticket.HasTimestamps())
	assert.Equal(t, 48*time.Hour, ticket.ResolutionDuration())
}
