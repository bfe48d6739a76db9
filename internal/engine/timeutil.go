// Package engine holds the deterministic scheduling algorithms: analytics,
// slot search, confidence scoring, recommendation passes and calendar-health
// detection. Everything here is a pure function of its inputs; callers own
// storage, clocks and logging.
package engine

import (
	"math"
	"time"
)

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AtTimeOfDay returns the instant on day's calendar date at the given
// offset from midnight. Wall-clock arithmetic keeps it correct across DST.
func AtTimeOfDay(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.Date()
	h := int(offset / time.Hour)
	mins := int((offset % time.Hour) / time.Minute)
	return time.Date(y, m, d, h, mins, 0, 0, day.Location())
}

// TimeOfDay returns the wall-clock offset of t from its midnight
func TimeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayKey formats t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func compactDate(t time.Time) string {
	return t.Format("20060102")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Round2 rounds to two decimals
func Round2(v float64) float64 {
	return round(v, 2)
}

// Round1 rounds to one decimal
func Round1(v float64) float64 {
	return round(v, 1)
}
