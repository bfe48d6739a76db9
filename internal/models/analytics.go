package models

import "time"

// CategorySnapshot aggregates one category's events in the lookback window.
// Derived on every engine run; never persisted.
type CategorySnapshot struct {
	CategoryID    string  `json:"category_id"`
	Name          string  `json:"name"`
	Color         string  `json:"color,omitempty"`
	Events        []Event `json:"-"`
	EventCount    int     `json:"event_count"`
	MeanMood      float64 `json:"mean_mood"`      // 0 when no event is rated
	PositiveShare float64 `json:"positive_share"` // events rated >= 4 / all events
	// Consistency is the normalized day-of-week entropy complement,
	// 1 = always the same weekday, 0 = spread evenly.
	Consistency float64 `json:"consistency"`
}

// MoodTrendPoint is one mood entry on the trend line
type MoodTrendPoint struct {
	Date   time.Time `json:"date"`
	Rating int       `json:"rating"`
}

// StreakType distinguishes the running streak from the best one
type StreakType string

const (
	StreakTypeCurrent StreakType = "current"
	StreakTypeLongest StreakType = "longest"
)

// MoodStreak is a maximal run of consecutive days with a mood entry at or
// above the streak threshold.
type MoodStreak struct {
	StreakType StreakType `json:"streak_type"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	Length     int        `json:"length"`
	IsActive   bool       `json:"is_active"`
}

// Analytics is the output of the analytics builder
type Analytics struct {
	Snapshots         []CategorySnapshot `json:"snapshots"`
	MoodTrend         []MoodTrendPoint   `json:"mood_trend"`
	RecentMoodAverage *float64           `json:"recent_mood_average,omitempty"`
	CurrentStreak     *MoodStreak        `json:"current_streak,omitempty"`
	LongestStreak     *MoodStreak        `json:"longest_streak,omitempty"`
}

// LatestMood returns the newest trend rating, if any
func (a *Analytics) LatestMood() (int, bool) {
	if len(a.MoodTrend) == 0 {
		return 0, false
	}
	return a.MoodTrend[len(a.MoodTrend)-1].Rating, true
}
