package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velara/FMC-SchedulingService/pkg/types"
	"github.com/velara/FMC-SchedulingService/pkg/ptr"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func iv(start, end string) Interval {
	return Interval{Start: ts(start), End: ts(end)}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"identical", iv("09:00", "12:00"), iv("09:00", "12:00"), true},
		{"partial overlap", iv("09:00", "12:00"), iv("11:30", "13:00"), true},
		{"contained", iv("09:00", "17:00"), iv("10:00", "11:00"), true},
		{"back to back", iv("09:00", "12:00"), iv("12:00", "15:00"), false},
		{"back to back reversed", iv("12:00", "15:00"), iv("09:00", "12:00"), false},
		{"disjoint", iv("09:00", "10:00"), iv("11:00", "12:00"), false},
		{"touch by one minute", iv("09:00", "12:01"), iv("12:00", "15:00"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestInterval_Contains(t *testing.T) {
	span := iv("10:00", "11:00")

	assert.True(t, span.Contains(ts("10:00")), "start is inside")
	assert.True(t, span.Contains(ts("10:30")))
	assert.False(t, span.Contains(ts("11:00")), "end is exclusive")
	assert.False(t, span.Contains(ts("09:59")))
}

func TestResolveWorkingIntervals(t *testing.T) {
	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC) // Monday
	hours := &FacilityHours{
		Weekday:   date.Weekday(),
		OpenTime:  ts("09:00"),
		CloseTime: ts("18:00"),
	}

	t.Run("falls back to facility hours without shifts", func(t *testing.T) {
		got := ResolveWorkingIntervals(nil, hours)
		require.Len(t, got, 1)
		assert.Equal(t, iv("09:00", "18:00"), got[0])
	})

	t.Run("explicit shifts are the entire truth", func(t *testing.T) {
		shifts := []*WorkShift{
			{ID: 2, Date: date, StartTime: ts("14:00"), EndTime: ts("20:00")},
			{ID: 1, Date: date, StartTime: ts("08:00"), EndTime: ts("12:00")},
		}

		got := ResolveWorkingIntervals(shifts, hours)
		require.Len(t, got, 2)
		// Facility hours are ignored and the result is sorted by start.
		assert.Equal(t, iv("08:00", "12:00"), got[0])
		assert.Equal(t, iv("14:00", "20:00"), got[1])
	})

	t.Run("closed facility day means not working", func(t *testing.T) {
		closed := &FacilityHours{Weekday: date.Weekday(), IsClosed: true}
		assert.Empty(t, ResolveWorkingIntervals(nil, closed))
	})

	t.Run("no shifts and no hours means not working", func(t *testing.T) {
		assert.Empty(t, ResolveWorkingIntervals(nil, nil))
	})
}

func TestGenerateOffers(t *testing.T) {
	tests := []struct {
		name        string
		intervals   []Interval
		granularity int
		want        []types.TimeString
	}{
		{
			name:        "even interval",
			intervals:   []Interval{iv("09:00", "11:00")},
			granularity: 30,
			want:        []types.TimeString{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:        "last step before end is still emitted",
			intervals:   []Interval{iv("10:00", "11:15")},
			granularity: 30,
			want:        []types.TimeString{"10:00", "10:30", "11:00"},
		},
		{
			name:        "steps anchor at interval start",
			intervals:   []Interval{iv("09:10", "10:30")},
			granularity: 30,
			want:        []types.TimeString{"09:10", "09:40", "10:10"},
		},
		{
			name:        "two intervals pool and sort",
			intervals:   []Interval{iv("14:00", "15:00"), iv("09:00", "10:00")},
			granularity: 60,
			want:        []types.TimeString{"09:00", "14:00"},
		},
		{
			name:        "overlapping intervals deduplicate",
			intervals:   []Interval{iv("09:00", "10:00"), iv("09:00", "10:30")},
			granularity: 30,
			want:        []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:        "empty input",
			intervals:   nil,
			granularity: 30,
			want:        []types.TimeString{},
		},
		{
			name:        "invalid interval skipped",
			intervals:   []Interval{iv("12:00", "09:00"), iv("10:00", "11:00")},
			granularity: 60,
			want:        []types.TimeString{"10:00"},
		},
		{
			name:        "interval touching midnight stops at day end",
			intervals:   []Interval{iv("23:00", "23:59")},
			granularity: 30,
			want:        []types.TimeString{"23:00", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateOffers(tt.intervals, tt.granularity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateOffers_DefaultGranularity(t *testing.T) {
	got, err := GenerateOffers([]Interval{iv("09:00", "10:30")}, 0)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00"}, got)
}

func TestGenerateOffers_IsDeterministic(t *testing.T) {
	intervals := []Interval{iv("09:00", "12:00"), iv("13:00", "17:00")}

	first, err := GenerateOffers(intervals, 45)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := GenerateOffers(intervals, 45)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFilterBookedOffers(t *testing.T) {
	offers := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}

	t.Run("long booking blocks every slot it spans", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 1, StartTime: ts("09:30"), DurationMinutes: 60, Status: StatusConfirmed},
		}

		free := FilterBookedOffers(offers, bookings, nil)
		// 09:30 and 10:00 fall inside [09:30, 10:30); 10:30 starts exactly at
		// the booking end and stays free.
		assert.Equal(t, []types.TimeString{"09:00", "10:30", "11:00"}, free)
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 1, StartTime: ts("09:30"), DurationMinutes: 60, Status: StatusCancelled},
		}

		free := FilterBookedOffers(offers, bookings, nil)
		assert.Equal(t, offers, free)
	})

	t.Run("completed bookings keep blocking", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 1, StartTime: ts("10:00"), DurationMinutes: 30, Status: StatusCompleted},
		}

		free := FilterBookedOffers(offers, bookings, nil)
		assert.NotContains(t, free, ts("10:00"))
	})

	t.Run("excluded booking does not block its own slot", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 7, StartTime: ts("10:00"), DurationMinutes: 60, Status: StatusPending},
		}

		free := FilterBookedOffers(offers, bookings, ptr.Ptr(int64(7)))
		assert.Equal(t, offers, free)
	})

	t.Run("exclusion only applies to the matching id", func(t *testing.T) {
		bookings := []*Booking{
			{ID: 7, StartTime: ts("09:00"), DurationMinutes: 30, Status: StatusPending},
			{ID: 8, StartTime: ts("10:00"), DurationMinutes: 30, Status: StatusPending},
		}

		free := FilterBookedOffers(offers, bookings, ptr.Ptr(int64(7)))
		assert.Contains(t, free, ts("09:00"))
		assert.NotContains(t, free, ts("10:00"))
	})
}

func TestContainsOffer(t *testing.T) {
	offers := []types.TimeString{"09:00", "09:30"}

	assert.True(t, ContainsOffer(offers, ts("09:30")))
	assert.False(t, ContainsOffer(offers, ts("09:15")))
	assert.False(t, ContainsOffer(nil, ts("09:00")))
}
