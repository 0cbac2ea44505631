package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_Lifecycle(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, completed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())

	assert.True(t, pending.CanBeRescheduled())
	assert.True(t, confirmed.CanBeRescheduled())
	assert.False(t, completed.CanBeRescheduled())
	assert.False(t, cancelled.CanBeRescheduled())

	// Only cancellation frees the slot.
	assert.True(t, pending.IsActive())
	assert.True(t, confirmed.IsActive())
	assert.True(t, completed.IsActive())
	assert.False(t, cancelled.IsActive())
}

func TestBooking_Interval(t *testing.T) {
	b := &Booking{StartTime: "10:00", DurationMinutes: 90}

	span, err := b.Interval()
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: "10:00", End: "11:30"}, span)
}

func TestParseBookingStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "completed", "cancelled"} {
		status, ok := ParseBookingStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, BookingStatus(valid), status)
	}

	_, ok := ParseBookingStatus("in_progress")
	assert.False(t, ok)

	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}
