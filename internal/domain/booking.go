package domain

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a committed reservation of one offer slot.
type Booking struct {
	ID              int64
	SpecialistID    int64
	ServiceID       int64
	Date            time.Time // calendar date, time part is zero
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Customer identity
	CustomerName  string
	CustomerPhone string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot.
// Cancelled bookings free the slot; completed ones keep it (their date has
// passed in practice).
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking can be moved to another slot.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status change is allowed:
// pending -> {confirmed, cancelled}, confirmed -> {completed, cancelled},
// completed and cancelled are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Interval returns the time span the booking actually occupies.
func (b *Booking) Interval() (Interval, error) {
	end, err := b.StartTime.AddMinutes(b.DurationMinutes)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: b.StartTime, End: end}, nil
}

// ParseBookingStatus converts a raw string to a known status.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// SpecialistBookingsFilter narrows a specialist's booking listing.
// Only SpecialistID is required; nil fields mean "no constraint".
type SpecialistBookingsFilter struct {
	SpecialistID    int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
