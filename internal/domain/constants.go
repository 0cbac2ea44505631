package domain

// Default configuration values
const (
	DefaultGranularityMinutes = 30
)

// Business validation constants
const (
	MinGranularityMinutes = 5
	MaxGranularityMinutes = 240

	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 200
	MaxCustomerPhoneLength      = 32
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses are the statuses in which a booking occupies its slot.
// Mirrored by the partial unique index on active bookings.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
