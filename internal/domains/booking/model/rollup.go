package model

import "time"

// Rollup holds the bookings shown next to an item: the closest upcoming and the latest finished one.
type Rollup struct {
	Next *Booking
	Last *Booking
}

// Rollups computes the rollup of each item from its bookings.
// Next is the earliest booking starting after now, Last the latest ending before now.
// Bookings of every status take part.
func Rollups(bookings []Booking, now time.Time) map[int64]Rollup {
	rollups := make(map[int64]Rollup)

	for i := range bookings {
		b := &bookings[i]
		rollup := rollups[b.ItemID]

		if b.StartTime.After(now) && (rollup.Next == nil || b.StartTime.Before(rollup.Next.StartTime)) {
			rollup.Next = b
		}

		if b.EndTime.Before(now) && (rollup.Last == nil || b.EndTime.After(rollup.Last.EndTime)) {
			rollup.Last = b
		}

		rollups[b.ItemID] = rollup
	}

	return rollups
}
