package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonnyWalker81/tempo/internal/models"
)

func ics(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

var sample = ics(
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:run-1",
	"DTSTAMP:20261001T000000Z",
	"DTSTART:20261012T070000Z",
	"DTEND:20261012T074500Z",
	"SUMMARY:Morning run",
	"DESCRIPTION:Along the river",
	"CATEGORIES:Running",
	"X-TEMPO-MOOD:5",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:standup",
	"DTSTAMP:20261001T000000Z",
	"DTSTART:20261012T090000Z",
	"DURATION:PT15M",
	"SUMMARY:Standup",
	"RRULE:FREQ=DAILY;COUNT=5",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:cancelled",
	"DTSTAMP:20261001T000000Z",
	"DTSTART:20261013T100000Z",
	"DTEND:20261013T110000Z",
	"SUMMARY:Cancelled sync",
	"STATUS:CANCELLED",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:holiday",
	"DTSTAMP:20261001T000000Z",
	"DTSTART;VALUE=DATE:20261014",
	"SUMMARY:Holiday",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:no-end",
	"DTSTAMP:20261001T000000Z",
	"DTSTART:20261015T180000Z",
	"SUMMARY:Dinner",
	"X-TEMPO-MOOD:9",
	"END:VEVENT",
	"END:VCALENDAR",
)

func TestDecode(t *testing.T) {
	from := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	imported, err := Decode(strings.NewReader(sample), ImportOptions{
		UserID: "user-1",
		From:   from,
		To:     from.AddDate(0, 0, 3),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, imported.Skipped, "cancelled and all-day events are skipped")
	require.Len(t, imported.Categories, 1)
	assert.Equal(t, models.Category{ID: "running", UserID: "user-1", Name: "Running"}, imported.Categories[0])

	byTitle := make(map[string][]models.Event)
	for _, e := range imported.Events {
		assert.Equal(t, "user-1", e.UserID)
		byTitle[e.Title] = append(byTitle[e.Title], e)
	}

	require.Len(t, byTitle["Morning run"], 1)
	run := byTitle["Morning run"][0]
	assert.Equal(t, 45*time.Minute, run.Duration())
	require.NotNil(t, run.MoodRating)
	assert.Equal(t, 5, *run.MoodRating)
	require.NotNil(t, run.CategoryID)
	assert.Equal(t, "running", *run.CategoryID)
	require.NotNil(t, run.Description)
	assert.Equal(t, "Along the river", *run.Description)

	// Only occurrences on Oct 10..12 fall in the window; the series starts Oct 12
	standups := byTitle["Standup"]
	require.Len(t, standups, 1)
	assert.Equal(t, 15*time.Minute, standups[0].Duration())

	require.Len(t, byTitle["Dinner"], 1)
	dinner := byTitle["Dinner"][0]
	assert.Equal(t, time.Hour, dinner.Duration(), "missing end defaults to one hour")
	assert.Nil(t, dinner.MoodRating, "out of range rating is ignored")
}

func TestDecode_StableIDs(t *testing.T) {
	opts := ImportOptions{
		UserID: "user-1",
		From:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := Decode(strings.NewReader(sample), opts)
	require.NoError(t, err)
	second, err := Decode(strings.NewReader(sample), opts)
	require.NoError(t, err)

	require.Len(t, first.Events, len(second.Events))
	seen := make(map[string]bool)
	for i := range first.Events {
		assert.Equal(t, first.Events[i].ID, second.Events[i].ID)
		assert.False(t, seen[first.Events[i].ID], "duplicate id %s", first.Events[i].ID)
		seen[first.Events[i].ID] = true
	}
	assert.Len(t, first.Events, 7, "run, five standups and dinner")
}

func TestDecode_RecurringNeedsWindow(t *testing.T) {
	_, err := Decode(strings.NewReader(sample), ImportOptions{UserID: "user-1"})
	assert.Error(t, err)
}

func TestDecode_RequiresUser(t *testing.T) {
	_, err := Decode(strings.NewReader(sample), ImportOptions{})
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	start := time.Date(2026, 10, 18, 18, 30, 0, 0, time.UTC)
	impact := "Short breaks tend to lift low-mood days"
	recs := []models.Recommendation{
		{
			ID:              "wellbeing-breathing-20261018",
			Title:           "Five minutes of box breathing",
			Subtitle:        "Inhale 4, hold 4, exhale 4, hold 4",
			Reason:          "Your mood has dipped lately",
			Type:            models.RecommendationWellbeing,
			SuggestedStart:  start,
			DurationMinutes: 15,
			Confidence:      0.75,
			MoodImpact:      &impact,
		},
		{
			ID:              "fallback-breather-20261018",
			Title:           "Take a breather",
			Type:            models.RecommendationWellbeing,
			SuggestedStart:  start.Add(-30 * time.Minute),
			DurationMinutes: 15,
			Confidence:      0.3,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, recs, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "UID:wellbeing-breathing-20261018@tempo")
	assert.Contains(t, out, "X-TEMPO-CONFIDENCE:0.75\r\n")
	assert.Contains(t, out, "X-TEMPO-CONFIDENCE:0.30\r\n")
	assert.NotContains(t, out, "VALUE=TEXT")
	// the fallback has nothing to describe
	assert.Equal(t, 1, strings.Count(out, "DESCRIPTION"))

	back, err := Decode(&buf, ImportOptions{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, back.Events, 2)

	first := back.Events[0]
	assert.Equal(t, "Five minutes of box breathing", first.Title)
	assert.True(t, first.StartTime.Equal(start))
	assert.Equal(t, 15*time.Minute, first.Duration())
	require.NotNil(t, first.Description)
	assert.Contains(t, *first.Description, impact)
	assert.Nil(t, back.Events[1].Description)
}

func TestEncode_Empty(t *testing.T) {
	err := Encode(&bytes.Buffer{}, nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyCalendar)
}
