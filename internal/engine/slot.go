package engine

import (
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

const (
	// DefaultSlotDuration is the block length tested when none is given
	DefaultSlotDuration = 60 * time.Minute
	// DefaultSlotSearchDays is how many days ahead the slot search looks
	DefaultSlotSearchDays = 7
)

// Interval is a half-open [Start, End) span of occupied time
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [start, end) intersects the interval
func (i Interval) Overlaps(start, end time.Time) bool {
	return i.Start.Before(end) && start.Before(i.End)
}

// IntervalsFromEvents converts events to occupied intervals
func IntervalsFromEvents(events []models.Event) []Interval {
	out := make([]Interval, 0, len(events))
	for _, e := range events {
		out = append(out, Interval{Start: e.StartTime, End: e.EndTime})
	}
	return out
}

// SlotQuery describes one slot search
type SlotQuery struct {
	// Reference is the day the search starts from; its location is used
	// for wall-clock arithmetic
	Reference time.Time
	// Now is the earliest acceptable start
	Now time.Time
	// TimeOfDay is the preferred offset from midnight
	TimeOfDay time.Duration
	// Duration of the block to place; DefaultSlotDuration when zero
	Duration time.Duration
	// Days to scan; DefaultSlotSearchDays when zero
	Days int
}

// FindSlot returns the first start at the preferred time of day, on one of
// the next Days days, whose block does not overlap any occupied interval.
// The initial candidate is Reference's day at TimeOfDay, moved forward by
// whole days while it lies before Now. When every day is taken the initial
// candidate is returned unchanged.
func FindSlot(q SlotQuery, occupied []Interval) time.Time {
	duration := q.Duration
	if duration <= 0 {
		duration = DefaultSlotDuration
	}
	days := q.Days
	if days <= 0 {
		days = DefaultSlotSearchDays
	}

	day := StartOfDay(q.Reference)
	candidate := AtTimeOfDay(day, q.TimeOfDay)
	for candidate.Before(q.Now) {
		day = day.AddDate(0, 0, 1)
		candidate = AtTimeOfDay(day, q.TimeOfDay)
	}

	for offset := 0; offset < days; offset++ {
		start := AtTimeOfDay(day.AddDate(0, 0, offset), q.TimeOfDay)
		end := start.Add(duration)
		if !overlapsAny(occupied, start, end) {
			return start
		}
	}

	return candidate
}

func overlapsAny(occupied []Interval, start, end time.Time) bool {
	for _, iv := range occupied {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}
