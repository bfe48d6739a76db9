package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups calendar events (work, exercise, social, ...)
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// Event represents a scheduled calendar event.
// EndTime is always after StartTime.
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CategoryID  *string   `json:"category_id,omitempty"`
	MoodRating  *int      `json:"mood_rating,omitempty"` // 1-5, recorded after the event
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	// Expanded relations (populated on fetch)
	Category *Category `json:"category,omitempty"`
}

// Duration returns the scheduled length of the event
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// CategoryKey returns the category id, or "" for uncategorized events
func (e Event) CategoryKey() string {
	if e.CategoryID == nil {
		return ""
	}
	return *e.CategoryID
}

// MoodEntry is a single daily mood rating (one per user per calendar day)
type MoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      time.Time `json:"date"`
	Rating    int       `json:"rating"` // 1-5
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Mood rating bounds shared by events, mood entries and feedback
const (
	MinMoodRating = 1
	MaxMoodRating = 5
)

// ValidMoodRating reports whether r is on the 1-5 scale
func ValidMoodRating(r int) bool {
	return r >= MinMoodRating && r <= MaxMoodRating
}
