package domain

import (
	"time"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// FacilityHours is the facility-wide default opening hours for one weekday
// (0 = Sunday ... 6 = Saturday, matching time.Weekday). Used as the fallback
// when a specialist has no explicit shifts on a date.
type FacilityHours struct {
	ID        int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsClosed  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the opening interval. Meaningless when IsClosed is true.
func (h *FacilityHours) Interval() Interval {
	return Interval{Start: h.OpenTime, End: h.CloseTime}
}

// SlotConfig is the facility-wide slot quantization setting.
// Changing it never rewrites existing bookings.
type SlotConfig struct {
	GranularityMinutes int

	UpdatedAt time.Time
}

// TemplateDay describes the desired working intervals for one weekday.
// A set of TemplateDays forms the weekly template used by bulk
// materialization of per-date WorkShift rows.
type TemplateDay struct {
	Weekday   time.Weekday
	Intervals []Interval
}
