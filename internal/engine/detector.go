package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// Detection thresholds
const (
	MinBreakGap       = 15 * time.Minute
	MaxDailyScheduled = 8 * time.Hour
	LongStretchSpan   = 4 * time.Hour
	LongStretchRest   = 30 * time.Minute
	ConflictBuffer    = 15 * time.Minute

	busyDayFactor  = 1.5
	lightDayFactor = 0.5
)

// Priority and confidence per finding kind. Priority uses the 1-5 scale.
const (
	conflictPriority       = 5
	conflictConfidence     = 0.95
	shortGapPriority       = 3
	shortGapConfidence     = 0.80
	overloadPriority       = 4
	overloadConfidence     = 0.85
	longStretchPriority    = 3
	longStretchConfidence  = 0.75
	distributionPriority   = 2
	distributionConfidence = 0.70
)

// Finding is a detected calendar-health issue, not yet persisted
type Finding struct {
	Type           models.SuggestionType
	EventID        *string
	RelatedEventID *string
	Description    string
	Reason         string
	Priority       int
	SuggestedStart *time.Time
	Confidence     float64
	Fingerprint    string
}

// DetectWindow bounds the scan. Overlaps, gaps and overload look at
// [Start, Start+LookaheadDays); distribution at [Start, Start+DistributionDays).
type DetectWindow struct {
	Start            time.Time
	LookaheadDays    int
	DistributionDays int
}

// Detect scans events for overlaps, short gaps, overloaded days, long
// stretches without a break and unbalanced weeks. Times are bucketed into
// days in window.Start's location.
func Detect(events []models.Event, window DetectWindow) []Finding {
	loc := window.Start.Location()
	start := StartOfDay(window.Start)
	lookaheadEnd := start.AddDate(0, 0, window.LookaheadDays)
	distributionEnd := start.AddDate(0, 0, window.DistributionDays)

	near := make(map[string][]models.Event)
	var nearDays []string
	counts := make(map[string]int)

	for _, e := range events {
		s := e.StartTime.In(loc)
		if s.Before(start) {
			continue
		}
		key := DayKey(s)
		if s.Before(distributionEnd) {
			counts[key]++
		}
		if s.Before(lookaheadEnd) {
			if _, ok := near[key]; !ok {
				nearDays = append(nearDays, key)
			}
			near[key] = append(near[key], e)
		}
	}
	sort.Strings(nearDays)

	var findings []Finding
	for _, day := range nearDays {
		dayEvents := near[day]
		sortByStart(dayEvents)
		findings = append(findings, adjacentFindings(dayEvents, loc)...)
		findings = append(findings, loadFindings(day, dayEvents, loc)...)
	}

	findings = append(findings, distributionFindings(counts, start, window.DistributionDays)...)
	return findings
}

func sortByStart(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartTime.Equal(events[j].StartTime) {
			return events[i].StartTime.Before(events[j].StartTime)
		}
		if !events[i].EndTime.Equal(events[j].EndTime) {
			return events[i].EndTime.Before(events[j].EndTime)
		}
		return events[i].ID < events[j].ID
	})
}

// adjacentFindings compares each event with the next one on the same day
func adjacentFindings(events []models.Event, loc *time.Location) []Finding {
	var out []Finding
	for i := 0; i+1 < len(events); i++ {
		cur, next := events[i], events[i+1]
		curID, nextID := cur.ID, next.ID

		if cur.EndTime.After(next.StartTime) {
			moveTo := cur.EndTime.Add(ConflictBuffer)
			out = append(out, Finding{
				Type:           models.SuggestionResolveConflict,
				EventID:        &nextID,
				RelatedEventID: &curID,
				Description:    fmt.Sprintf("%q overlaps with %q", next.Title, cur.Title),
				Reason: fmt.Sprintf("%q starts at %s but %q runs until %s; move it to %s",
					next.Title, clock(next.StartTime, loc), cur.Title, clock(cur.EndTime, loc), clock(moveTo, loc)),
				Priority:       conflictPriority,
				SuggestedStart: &moveTo,
				Confidence:     conflictConfidence,
				Fingerprint:    fmt.Sprintf("resolve_conflict:%s:%s", curID, nextID),
			})
			continue
		}

		if gap := next.StartTime.Sub(cur.EndTime); gap < MinBreakGap {
			out = append(out, Finding{
				Type:           models.SuggestionSuggestBreak,
				EventID:        &nextID,
				RelatedEventID: &curID,
				Description:    fmt.Sprintf("Only %d minutes between %q and %q", int(gap.Minutes()), cur.Title, next.Title),
				Reason:         fmt.Sprintf("Leave at least %d minutes between events to reset", int(MinBreakGap.Minutes())),
				Priority:       shortGapPriority,
				Confidence:     shortGapConfidence,
				Fingerprint:    fmt.Sprintf("suggest_break:%s:%s", curID, nextID),
			})
		}
	}
	return out
}

// loadFindings flags overloaded days and, at most once per day, a long
// stretch that leaves no room for a break
func loadFindings(day string, events []models.Event, loc *time.Location) []Finding {
	var out []Finding

	var total time.Duration
	for _, e := range events {
		total += e.Duration()
	}
	if total > MaxDailyScheduled {
		label := events[0].StartTime.In(loc).Format("Monday Jan 2")
		out = append(out, Finding{
			Type:        models.SuggestionPatternAlert,
			Description: fmt.Sprintf("%s has %.1f hours scheduled", label, total.Hours()),
			Reason:      fmt.Sprintf("More than %d scheduled hours in one day tends to drain energy; consider moving something", int(MaxDailyScheduled.Hours())),
			Priority:    overloadPriority,
			Confidence:  overloadConfidence,
			Fingerprint: fmt.Sprintf("pattern_alert:%s", day),
		})
	}

	for i := 0; i+1 < len(events); i++ {
		cur, next := events[i], events[i+1]
		if next.StartTime.Sub(cur.StartTime) > LongStretchSpan && next.StartTime.Sub(cur.EndTime) < LongStretchRest {
			curID := cur.ID
			out = append(out, Finding{
				Type:        models.SuggestionSuggestBreak,
				EventID:     &curID,
				Description: fmt.Sprintf("%q runs for over %d hours with little rest after", cur.Title, int(LongStretchSpan.Hours())),
				Reason:      "Schedule a short break inside long stretches of work",
				Priority:    longStretchPriority,
				Confidence:  longStretchConfidence,
				Fingerprint: fmt.Sprintf("suggest_break:day:%s", day),
			})
			break
		}
	}

	return out
}

// distributionFindings compares days within each ISO week of the window.
// Days of the week that fall inside the window count even with no events.
func distributionFindings(counts map[string]int, start time.Time, days int) []Finding {
	type week struct {
		key  string
		days []time.Time
	}
	var weeks []*week
	index := make(map[string]*week)

	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		y, w := d.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", y, w)
		wk, ok := index[key]
		if !ok {
			wk = &week{key: key}
			index[key] = wk
			weeks = append(weeks, wk)
		}
		wk.days = append(wk.days, d)
	}

	var out []Finding
	for _, wk := range weeks {
		total := 0
		busiest, lightest := wk.days[0], wk.days[0]
		for _, d := range wk.days {
			c := counts[DayKey(d)]
			total += c
			if c > counts[DayKey(busiest)] {
				busiest = d
			}
			if c < counts[DayKey(lightest)] {
				lightest = d
			}
		}
		if total == 0 {
			continue
		}

		avg := float64(total) / float64(len(wk.days))
		maxCount, minCount := counts[DayKey(busiest)], counts[DayKey(lightest)]
		if float64(maxCount) <= busyDayFactor*avg || float64(minCount) >= lightDayFactor*avg {
			continue
		}

		out = append(out, Finding{
			Type: models.SuggestionOptimizeDistribution,
			Description: fmt.Sprintf("%s has %d events while %s has %d",
				busiest.Format("Monday Jan 2"), maxCount, lightest.Format("Monday Jan 2"), minCount),
			Reason:      fmt.Sprintf("Week %s averages %.1f events per day; moving some to %s would even it out", wk.key, avg, lightest.Format("Monday")),
			Priority:    distributionPriority,
			Confidence:  distributionConfidence,
			Fingerprint: fmt.Sprintf("optimize_distribution:%s", wk.key),
		})
	}
	return out
}

func clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}
