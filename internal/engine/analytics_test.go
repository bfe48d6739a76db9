package engine

import (
	"math"
	"testing"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

func TestBuildAnalytics_Snapshots(t *testing.T) {
	events := []models.Event{
		newEvent("Run", at(daysAgo(1), 7, 0), time.Hour, withCategory("exercise", "Exercise"), withMood(5)),
		newEvent("Swim", at(daysAgo(3), 7, 0), time.Hour, withCategory("exercise", "Exercise"), withMood(4)),
		newEvent("Yoga", at(daysAgo(5), 7, 0), time.Hour, withCategory("exercise", "Exercise")),
		newEvent("Standup", at(daysAgo(1), 9, 0), 30*time.Minute, withCategory("work", "Work"), withMood(2)),
		newEvent("Review", at(daysAgo(2), 9, 0), 30*time.Minute, withCategory("work", "Work"), withMood(3)),
		newEvent("Dinner", at(daysAgo(2), 19, 0), 2*time.Hour, withCategory("social", "Social")),
		newEvent("Dentist", at(daysAgo(4), 14, 0), time.Hour),
	}

	a := BuildAnalytics(events, nil, refDay)

	if len(a.Snapshots) != 3 {
		t.Fatalf("got %d snapshots, want 3 (uncategorized excluded)", len(a.Snapshots))
	}

	wantOrder := []string{"exercise", "work", "social"}
	for i, id := range wantOrder {
		if a.Snapshots[i].CategoryID != id {
			t.Errorf("snapshot[%d] = %s, want %s", i, a.Snapshots[i].CategoryID, id)
		}
	}

	ex := a.Snapshots[0]
	if ex.MeanMood != 4.5 {
		t.Errorf("exercise mean = %v, want 4.5", ex.MeanMood)
	}
	if ex.EventCount != 3 {
		t.Errorf("exercise count = %d, want 3", ex.EventCount)
	}
	if ex.PositiveShare != 0.67 {
		t.Errorf("exercise positive share = %v, want 0.67", ex.PositiveShare)
	}
	if ex.Name != "Exercise" || ex.Color != "#00aa00" {
		t.Errorf("exercise name/color = %q/%q", ex.Name, ex.Color)
	}

	social := a.Snapshots[2]
	if social.MeanMood != 0 {
		t.Errorf("unrated snapshot mean = %v, want 0", social.MeanMood)
	}
}

func TestBuildAnalytics_TieBreaksByCountThenName(t *testing.T) {
	events := []models.Event{
		newEvent("b1", at(daysAgo(1), 8, 0), time.Hour, withCategory("b", "Beta"), withMood(4)),
		newEvent("a1", at(daysAgo(1), 10, 0), time.Hour, withCategory("a", "Alpha"), withMood(4)),
		newEvent("c1", at(daysAgo(1), 12, 0), time.Hour, withCategory("c", "Gamma"), withMood(4)),
		newEvent("c2", at(daysAgo(2), 12, 0), time.Hour, withCategory("c", "Gamma"), withMood(4)),
	}

	a := BuildAnalytics(events, nil, refDay)
	got := []string{a.Snapshots[0].CategoryID, a.Snapshots[1].CategoryID, a.Snapshots[2].CategoryID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildAnalytics_CategoryWithoutRecordUsesID(t *testing.T) {
	e := newEvent("Piano", at(daysAgo(1), 18, 0), time.Hour)
	e.CategoryID = strPtr("music")

	a := BuildAnalytics([]models.Event{e}, nil, refDay)
	if a.Snapshots[0].Name != "music" {
		t.Errorf("name = %q, want category id", a.Snapshots[0].Name)
	}
}

func TestBuildAnalytics_MoodTrend(t *testing.T) {
	moods := moodSeries(5, 4, 1, 2, 3, 3, 4, 4, 5)
	// shuffle input order; the trend must come out chronological
	moods[0], moods[8] = moods[8], moods[0]

	a := BuildAnalytics(nil, moods, refDay)

	if len(a.MoodTrend) != 9 {
		t.Fatalf("trend has %d points, want 9", len(a.MoodTrend))
	}
	for i := 1; i < len(a.MoodTrend); i++ {
		if a.MoodTrend[i].Date.Before(a.MoodTrend[i-1].Date) {
			t.Fatalf("trend not chronological at %d", i)
		}
	}
	if a.RecentMoodAverage == nil {
		t.Fatal("recent average missing")
	}
	// last 7: 1,2,3,3,4,4,5
	if *a.RecentMoodAverage != 3.14 {
		t.Errorf("recent average = %v, want 3.14", *a.RecentMoodAverage)
	}
	if latest, ok := a.LatestMood(); !ok || latest != 5 {
		t.Errorf("latest = %d,%v, want 5", latest, ok)
	}
}

func TestBuildAnalytics_MoodTrendStopsAtReference(t *testing.T) {
	moods := moodSeries(4, 4, 5)
	moods = append(moods,
		models.MoodEntry{ID: "later-1", UserID: "user-1", Date: refDay.AddDate(0, 0, 1), Rating: 1},
		models.MoodEntry{ID: "later-2", UserID: "user-1", Date: refDay.AddDate(0, 0, 6), Rating: 1},
	)

	a := BuildAnalytics(nil, moods, refDay)

	if len(a.MoodTrend) != 3 {
		t.Fatalf("trend has %d points, want 3", len(a.MoodTrend))
	}
	if latest, ok := a.LatestMood(); !ok || latest != 5 {
		t.Errorf("latest = %d,%v, want 5", latest, ok)
	}
	if a.RecentMoodAverage == nil || *a.RecentMoodAverage != 4.33 {
		t.Errorf("recent average = %v, want 4.33", a.RecentMoodAverage)
	}
}

func TestBuildAnalytics_NoMoodEntries(t *testing.T) {
	a := BuildAnalytics(nil, nil, refDay)
	if a.RecentMoodAverage != nil {
		t.Errorf("recent average = %v, want nil", *a.RecentMoodAverage)
	}
	if a.CurrentStreak != nil || a.LongestStreak != nil {
		t.Error("streaks should be nil without mood data")
	}
	if _, ok := a.LatestMood(); ok {
		t.Error("LatestMood should report no data")
	}
}

func TestMoodStreaks(t *testing.T) {
	tests := []struct {
		name        string
		ratings     []int
		wantCurrent int
		wantLongest int
	}{
		{"all good", []int{4, 5, 4}, 3, 3},
		{"broken then running", []int{5, 5, 5, 2, 4, 4}, 2, 3},
		{"ended yesterday", []int{4, 4, 4, 1}, 3, 3},
		{"stale", []int{5, 5, 1, 1}, 0, 2},
		{"never good", []int{1, 2, 3}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := BuildAnalytics(nil, moodSeries(tt.ratings...), refDay)

			gotCurrent := 0
			if a.CurrentStreak != nil {
				gotCurrent = a.CurrentStreak.Length
				if !a.CurrentStreak.IsActive {
					t.Error("current streak must be active")
				}
			}
			if gotCurrent != tt.wantCurrent {
				t.Errorf("current = %d, want %d", gotCurrent, tt.wantCurrent)
			}

			gotLongest := 0
			if a.LongestStreak != nil {
				gotLongest = a.LongestStreak.Length
			}
			if gotLongest != tt.wantLongest {
				t.Errorf("longest = %d, want %d", gotLongest, tt.wantLongest)
			}
		})
	}
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		name string
		dist []float64
		want float64
	}{
		{"empty", nil, 0},
		{"all zero", []float64{0, 0, 0}, 0},
		{"single bucket", []float64{0, 5, 0, 0, 0, 0, 0}, 1},
		{"uniform", []float64{2, 2, 2, 2, 2, 2, 2}, 0},
		{"one bucket only", []float64{3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Consistency(tt.dist); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Consistency(%v) = %v, want %v", tt.dist, got, tt.want)
			}
		})
	}
}
