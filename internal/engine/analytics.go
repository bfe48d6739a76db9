package engine

import (
	"math"
	"sort"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

const (
	// PositiveMoodThreshold is the rating at or above which an event counts
	// as a positive experience
	PositiveMoodThreshold = 4

	// RecentMoodPoints is how many trend points feed the recent average
	RecentMoodPoints = 7

	// StreakMoodThreshold is the daily mood that keeps a streak going
	StreakMoodThreshold = 4
)

// BuildAnalytics aggregates historical events into category snapshots and
// mood entries into a chronological trend. ref anchors streak activity and
// the weekday used for consistency; mood entries dated after ref's day are
// left out of the trend.
func BuildAnalytics(events []models.Event, moods []models.MoodEntry, ref time.Time) models.Analytics {
	analytics := models.Analytics{
		Snapshots: buildSnapshots(events, ref.Location()),
		MoodTrend: buildMoodTrend(moods, ref),
	}

	if avg, ok := meanOfLast(analytics.MoodTrend, RecentMoodPoints); ok {
		analytics.RecentMoodAverage = &avg
	}

	current, longest := moodStreaks(analytics.MoodTrend, ref)
	analytics.CurrentStreak = current
	analytics.LongestStreak = longest

	return analytics
}

func buildSnapshots(events []models.Event, loc *time.Location) []models.CategorySnapshot {
	byCategory := make(map[string]*models.CategorySnapshot)
	order := make([]string, 0)

	for _, e := range events {
		key := e.CategoryKey()
		if key == "" {
			continue
		}
		snap, ok := byCategory[key]
		if !ok {
			snap = &models.CategorySnapshot{CategoryID: key, Name: key}
			if e.Category != nil {
				if e.Category.Name != "" {
					snap.Name = e.Category.Name
				}
				snap.Color = e.Category.Color
			}
			byCategory[key] = snap
			order = append(order, key)
		}
		snap.Events = append(snap.Events, e)
	}

	snapshots := make([]models.CategorySnapshot, 0, len(order))
	for _, key := range order {
		snap := byCategory[key]
		snap.EventCount = len(snap.Events)

		var sum float64
		var rated, positive int
		weekdays := make([]float64, 7)
		for _, e := range snap.Events {
			weekdays[int(e.StartTime.In(loc).Weekday())]++
			if e.MoodRating == nil {
				continue
			}
			rated++
			sum += float64(*e.MoodRating)
			if *e.MoodRating >= PositiveMoodThreshold {
				positive++
			}
		}
		if rated > 0 {
			snap.MeanMood = Round2(sum / float64(rated))
		}
		if snap.EventCount > 0 {
			snap.PositiveShare = Round2(float64(positive) / float64(snap.EventCount))
		}
		snap.Consistency = Round2(Consistency(weekdays))

		snapshots = append(snapshots, *snap)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		a, b := snapshots[i], snapshots[j]
		if a.MeanMood != b.MeanMood {
			return a.MeanMood > b.MeanMood
		}
		if a.EventCount != b.EventCount {
			return a.EventCount > b.EventCount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CategoryID < b.CategoryID
	})

	return snapshots
}

func buildMoodTrend(moods []models.MoodEntry, ref time.Time) []models.MoodTrendPoint {
	last := DayKey(ref)
	trend := make([]models.MoodTrendPoint, 0, len(moods))
	for _, m := range moods {
		if DayKey(m.Date) > last {
			continue
		}
		trend = append(trend, models.MoodTrendPoint{Date: m.Date, Rating: m.Rating})
	}
	sort.SliceStable(trend, func(i, j int) bool {
		return trend[i].Date.Before(trend[j].Date)
	})
	return trend
}

// meanOfLast averages the ratings of the last n points
func meanOfLast(trend []models.MoodTrendPoint, n int) (float64, bool) {
	if len(trend) == 0 || n <= 0 {
		return 0, false
	}
	start := len(trend) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, p := range trend[start:] {
		sum += float64(p.Rating)
	}
	return Round2(sum / float64(len(trend)-start)), true
}

// Consistency is the normalized entropy complement of a distribution:
// 1 when every sample lands in one bucket, 0 when spread evenly.
func Consistency(distribution []float64) float64 {
	n := len(distribution)
	if n == 0 {
		return 0
	}

	var total float64
	for _, v := range distribution {
		total += v
	}
	if total == 0 {
		return 0
	}

	var entropy float64
	for _, v := range distribution {
		if v > 0 {
			p := v / total
			entropy -= p * math.Log2(p)
		}
	}

	maxEntropy := math.Log2(float64(n))
	if maxEntropy == 0 {
		return 1
	}
	return 1 - entropy/maxEntropy
}

// moodStreaks finds the running and the longest run of consecutive days
// whose mood meets StreakMoodThreshold. The current streak is active only
// if its last day is ref's day or the day before.
func moodStreaks(trend []models.MoodTrendPoint, ref time.Time) (current, longest *models.MoodStreak) {
	seen := make(map[string]bool)
	days := make([]time.Time, 0)
	for _, p := range trend {
		if p.Rating < StreakMoodThreshold {
			continue
		}
		y, m, d := p.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if key := DayKey(day); !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return nil, nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	runStart, runLen := days[0], 1
	best := models.MoodStreak{StreakType: models.StreakTypeLongest, StartDate: days[0], EndDate: days[0], Length: 1}

	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) <= 24*time.Hour {
			runLen++
		} else {
			runStart, runLen = days[i], 1
		}
		if runLen > best.Length {
			best = models.MoodStreak{
				StreakType: models.StreakTypeLongest,
				StartDate:  runStart,
				EndDate:    days[i],
				Length:     runLen,
			}
		}
	}

	ry, rm, rd := ref.Date()
	today := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	last := days[len(days)-1]
	if gap := today.Sub(last); gap >= 0 && gap <= 24*time.Hour {
		current = &models.MoodStreak{
			StreakType: models.StreakTypeCurrent,
			StartDate:  runStart,
			EndDate:    last,
			Length:     runLen,
			IsActive:   true,
		}
		if best.EndDate.Equal(last) {
			best.IsActive = true
		}
	}

	return current, &best
}
