package domain

import (
	"sort"

	"github.com/velara/FMC-SchedulingService/pkg/types"
)

// ResolveWorkingIntervals determines the effective working intervals of a
// specialist for one date.
//
// Resolution order:
//  1. Explicit WorkShift rows for the date are the entire truth for that day,
//     even a single one; facility hours are ignored. This lets staff be closed
//     on a day the facility is open, or work extra hours.
//  2. With no explicit rows, facility hours for the weekday are the fallback:
//     closed day resolves to no intervals, otherwise the single opening
//     interval is returned.
//
// The result is sorted by start time. An empty result means "not working".
func ResolveWorkingIntervals(shifts []*WorkShift, hours *FacilityHours) []Interval {
	if len(shifts) > 0 {
		intervals := make([]Interval, 0, len(shifts))
		for _, shift := range shifts {
			intervals = append(intervals, shift.Interval())
		}
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].Start.IsBefore(intervals[j].Start)
		})
		return intervals
	}

	if hours == nil || hours.IsClosed {
		return []Interval{}
	}

	return []Interval{hours.Interval()}
}

// GenerateOffers turns working intervals into the pooled list of offerable
// slot start times.
//
// Each interval is walked from its own start in steps of granularityMinutes;
// a step is emitted while it is strictly before the interval's end. Anchoring
// steps to the interval's start (not midnight) keeps offers evenly spaced
// from an odd shift start such as 09:10. Offers from all intervals are
// pooled, deduplicated and sorted ascending.
//
// The function is pure: the same input always yields the same output.
func GenerateOffers(intervals []Interval, granularityMinutes int) ([]types.TimeString, error) {
	if granularityMinutes <= 0 {
		granularityMinutes = DefaultGranularityMinutes
	}

	seen := make(map[types.TimeString]struct{})
	offers := make([]types.TimeString, 0)

	for _, interval := range intervals {
		if !interval.IsValid() {
			continue
		}

		current := interval.Start
		for current.IsBefore(interval.End) {
			if _, ok := seen[current]; !ok {
				seen[current] = struct{}{}
				offers = append(offers, current)
			}

			next, err := current.AddMinutes(granularityMinutes)
			if err != nil {
				// Stepping past midnight means the interval is exhausted.
				break
			}
			current = next
		}
	}

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].IsBefore(offers[j])
	})

	return offers, nil
}

// FilterBookedOffers removes offers consumed by non-cancelled bookings.
//
// Blocking is duration-aware: an offer is removed when its start time falls
// inside [booking.StartTime, booking.StartTime+duration) of any blocking
// booking, so a long appointment blocks every slot it spans, not only its
// first one. Half-open semantics: an offer starting exactly when a booking
// ends is free.
//
// A booking whose ID equals excludeBookingID never blocks: when an existing
// booking is being edited it must not occupy its own current slot.
func FilterBookedOffers(offers []types.TimeString, bookings []*Booking, excludeBookingID *int64) []types.TimeString {
	free := make([]types.TimeString, 0, len(offers))

	for _, offer := range offers {
		if !isOfferBlocked(offer, bookings, excludeBookingID) {
			free = append(free, offer)
		}
	}

	return free
}

// isOfferBlocked reports whether any blocking booking occupies the offer.
func isOfferBlocked(offer types.TimeString, bookings []*Booking, excludeBookingID *int64) bool {
	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}

		span, err := booking.Interval()
		if err != nil {
			// Unusable duration: fall back to blocking the exact start time.
			if booking.StartTime == offer {
				return true
			}
			continue
		}

		if span.Contains(offer) {
			return true
		}
	}

	return false
}

// ContainsOffer reports whether the offer list contains the given time.
func ContainsOffer(offers []types.TimeString, t types.TimeString) bool {
	for _, offer := range offers {
		if offer == t {
			return true
		}
	}
	return false
}
