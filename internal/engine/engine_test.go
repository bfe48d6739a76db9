package engine

import (
	"fmt"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// Shared fixtures for the engine tests. Wednesday 2026-03-11, UTC.
var refDay = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func daysAgo(n int) time.Time {
	return refDay.AddDate(0, 0, -n)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

type eventOpt func(*models.Event)

func withCategory(id, name string) eventOpt {
	return func(e *models.Event) {
		e.CategoryID = strPtr(id)
		e.Category = &models.Category{ID: id, Name: name, Color: "#00aa00"}
	}
}

func withMood(r int) eventOpt {
	return func(e *models.Event) { e.MoodRating = intPtr(r) }
}

var eventSeq int

func newEvent(title string, start time.Time, length time.Duration, opts ...eventOpt) models.Event {
	eventSeq++
	e := models.Event{
		ID:        fmt.Sprintf("evt-%03d", eventSeq),
		UserID:    "user-1",
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(length),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func moodSeries(ratings ...int) []models.MoodEntry {
	entries := make([]models.MoodEntry, len(ratings))
	for i, r := range ratings {
		entries[i] = models.MoodEntry{
			ID:     fmt.Sprintf("mood-%d", i),
			UserID: "user-1",
			Date:   daysAgo(len(ratings) - 1 - i),
			Rating: r,
		}
	}
	return entries
}
