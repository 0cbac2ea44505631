package domain

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// Interval is a half-open [Start, End) time-of-day range.
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid reports whether the interval is well-formed and non-empty.
func (i Interval) IsValid() bool {
	if i.Start.Validate() != nil || i.End.Validate() != nil {
		return false
	}
	return i.Start.IsBefore(i.End)
}

// Overlaps reports whether two half-open intervals intersect.
// Back-to-back intervals (i.End == other.Start) do NOT overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Contains reports whether t falls inside the half-open interval.
func (i Interval) Contains(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// String returns the "HH:MM-HH:MM" representation.
func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// WorkShift is one contiguous working interval of one specialist on one
// concrete calendar date. Not a recurring rule: recurring schedules are
// materialized into per-date rows ahead of time.
type WorkShift struct {
	ID           int64
	SpecialistID int64
	Date         time.Time // calendar date, time part is zero
	StartTime    types.TimeString
	EndTime      types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the shift's working interval.
func (s *WorkShift) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}
