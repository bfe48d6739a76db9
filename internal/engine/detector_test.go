package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

func detectWindow() DetectWindow {
	return DetectWindow{Start: refDay, LookaheadDays: 7, DistributionDays: 14}
}

func countType(findings []Finding, typ models.SuggestionType) int {
	n := 0
	for _, f := range findings {
		if f.Type == typ {
			n++
		}
	}
	return n
}

func TestDetect_Overlap(t *testing.T) {
	day := refDay.AddDate(0, 0, 1)
	first := newEvent("Standup", at(day, 9, 0), 30*time.Minute)
	second := newEvent("Design review", at(day, 9, 15), 45*time.Minute)

	findings := Detect([]models.Event{second, first}, detectWindow())

	if got := countType(findings, models.SuggestionResolveConflict); got != 1 {
		t.Fatalf("got %d ResolveConflict, want exactly 1", got)
	}
	var f Finding
	for _, x := range findings {
		if x.Type == models.SuggestionResolveConflict {
			f = x
		}
	}
	if f.EventID == nil || *f.EventID != second.ID {
		t.Errorf("EventID = %v, want second event %s", f.EventID, second.ID)
	}
	if f.RelatedEventID == nil || *f.RelatedEventID != first.ID {
		t.Errorf("RelatedEventID = %v, want %s", f.RelatedEventID, first.ID)
	}
	if f.Priority != 5 {
		t.Errorf("priority = %d, want 5", f.Priority)
	}
	if f.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", f.Confidence)
	}
	if f.SuggestedStart == nil || !f.SuggestedStart.Equal(at(day, 9, 45)) {
		t.Errorf("SuggestedStart = %v, want 09:45", f.SuggestedStart)
	}
	if f.Fingerprint != "resolve_conflict:"+first.ID+":"+second.ID {
		t.Errorf("fingerprint = %q", f.Fingerprint)
	}
	if countType(findings, models.SuggestionSuggestBreak) != 0 {
		t.Error("an overlap must not also produce a short-gap break")
	}
}

func TestDetect_ShortGap(t *testing.T) {
	day := refDay.AddDate(0, 0, 2)
	tests := []struct {
		name string
		gap  time.Duration
		want int
	}{
		{"back to back", 0, 1},
		{"ten minutes", 10 * time.Minute, 1},
		{"exactly fifteen", 15 * time.Minute, 0},
		{"half hour", 30 * time.Minute, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newEvent("A", at(day, 10, 0), time.Hour)
			b := newEvent("B", a.EndTime.Add(tt.gap), time.Hour)

			findings := Detect([]models.Event{a, b}, detectWindow())

			got := 0
			for _, f := range findings {
				if f.Type == models.SuggestionSuggestBreak && f.Priority == 3 && f.Confidence == 0.80 {
					got++
				}
			}
			if got != tt.want {
				t.Errorf("got %d short-gap breaks, want %d", got, tt.want)
			}
		})
	}
}

func TestDetect_OverloadedDay(t *testing.T) {
	day := refDay.AddDate(0, 0, 3)
	events := []models.Event{
		newEvent("Block 1", at(day, 8, 0), 2*time.Hour),
		newEvent("Block 2", at(day, 10, 30), 2*time.Hour),
		newEvent("Block 3", at(day, 13, 0), 2*time.Hour),
		newEvent("Block 4", at(day, 15, 30), 90*time.Minute),
		newEvent("Block 5", at(day, 17, 30), 90*time.Minute),
	}

	findings := Detect(events, detectWindow())

	if got := countType(findings, models.SuggestionPatternAlert); got != 1 {
		t.Fatalf("got %d PatternAlert, want exactly 1", got)
	}
	for _, f := range findings {
		if f.Type != models.SuggestionPatternAlert {
			continue
		}
		if f.Priority != 4 || f.Confidence != 0.85 {
			t.Errorf("priority/confidence = %d/%v, want 4/0.85", f.Priority, f.Confidence)
		}
		if f.Fingerprint != "pattern_alert:"+DayKey(day) {
			t.Errorf("fingerprint = %q", f.Fingerprint)
		}
	}
}

func TestDetect_LongStretchOncePerDay(t *testing.T) {
	day := refDay.AddDate(0, 0, 1)
	events := []models.Event{
		newEvent("Deep work", at(day, 8, 0), 4*time.Hour+40*time.Minute),
		newEvent("Lunch meeting", at(day, 13, 0), time.Hour),
		newEvent("Workshop", at(day, 14, 0), 4*time.Hour+45*time.Minute),
		newEvent("Dinner", at(day, 19, 0), time.Hour),
	}

	findings := Detect(events, detectWindow())

	got := 0
	for _, f := range findings {
		if f.Fingerprint == "suggest_break:day:"+DayKey(day) {
			got++
			if f.Priority != 3 || f.Confidence != 0.75 {
				t.Errorf("priority/confidence = %d/%v, want 3/0.75", f.Priority, f.Confidence)
			}
		}
	}
	if got != 1 {
		t.Errorf("got %d long-stretch breaks, want 1", got)
	}
}

func TestDetect_Distribution(t *testing.T) {
	// refDay is a Wednesday; Wed-Sun of its ISO week are in the window
	var events []models.Event
	for i := 0; i < 6; i++ {
		events = append(events, newEvent("Busy", at(refDay, 8+i, 0), 30*time.Minute))
	}
	thu := refDay.AddDate(0, 0, 1)
	events = append(events, newEvent("One thing", at(thu, 9, 0), 30*time.Minute))

	findings := Detect(events, detectWindow())

	var dist []Finding
	for _, f := range findings {
		if f.Type == models.SuggestionOptimizeDistribution {
			dist = append(dist, f)
		}
	}
	if len(dist) != 1 {
		t.Fatalf("got %d OptimizeDistribution, want 1", len(dist))
	}
	y, w := refDay.ISOWeek()
	if want := "optimize_distribution:" + isoKey(y, w); dist[0].Fingerprint != want {
		t.Errorf("fingerprint = %q, want %q", dist[0].Fingerprint, want)
	}
	if dist[0].Priority != 2 || dist[0].Confidence != 0.70 {
		t.Errorf("priority/confidence = %d/%v", dist[0].Priority, dist[0].Confidence)
	}
}

func TestDetect_BalancedWeekNoDistribution(t *testing.T) {
	var events []models.Event
	for i := 0; i < 14; i++ {
		d := refDay.AddDate(0, 0, i)
		events = append(events, newEvent("Daily", at(d, 9, 0), 30*time.Minute))
	}

	findings := Detect(events, detectWindow())
	if got := countType(findings, models.SuggestionOptimizeDistribution); got != 0 {
		t.Errorf("got %d OptimizeDistribution on a balanced calendar", got)
	}
}

func TestDetect_IgnoresEventsOutsideWindow(t *testing.T) {
	past := refDay.AddDate(0, 0, -1)
	far := refDay.AddDate(0, 0, 10)
	events := []models.Event{
		newEvent("Past A", at(past, 9, 0), time.Hour),
		newEvent("Past B", at(past, 9, 30), time.Hour),
		newEvent("Far A", at(far, 9, 0), time.Hour),
		newEvent("Far B", at(far, 9, 30), time.Hour),
	}

	findings := Detect(events, detectWindow())
	if got := countType(findings, models.SuggestionResolveConflict); got != 0 {
		t.Errorf("got %d conflicts outside the look-ahead window", got)
	}
}

func isoKey(y, w int) string {
	return fmt.Sprintf("%d-W%02d", y, w)
}
