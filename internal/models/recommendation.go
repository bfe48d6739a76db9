package models

import (
	"fmt"
	"time"
)

// RecommendationType tags what kind of activity a recommendation proposes
type RecommendationType string

const (
	RecommendationActivity   RecommendationType = "activity"
	RecommendationWellbeing  RecommendationType = "wellbeing"
	RecommendationReflection RecommendationType = "reflection"
	RecommendationRoutine    RecommendationType = "routine"
	RecommendationRest       RecommendationType = "rest"
)

// Valid reports whether t is one of the known recommendation types
func (t RecommendationType) Valid() bool {
	switch t {
	case RecommendationActivity, RecommendationWellbeing, RecommendationReflection,
		RecommendationRoutine, RecommendationRest:
		return true
	}
	return false
}

func (t *RecommendationType) UnmarshalText(b []byte) error {
	v := RecommendationType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown recommendation type %q", string(b))
	}
	*t = v
	return nil
}

// Recommendation is a ranked, explainable activity suggestion.
// Generated per request and never persisted; only feedback on its ID is stored.
type Recommendation struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Subtitle        string             `json:"subtitle"`
	Reason          string             `json:"reason"`
	Type            RecommendationType `json:"type"`
	SuggestedStart  time.Time          `json:"suggested_start"`
	DurationMinutes int                `json:"suggested_duration_minutes"`
	Confidence      float64            `json:"confidence"` // 0..1
	CategoryID      *string            `json:"category_id,omitempty"`
	MoodImpact      *string            `json:"mood_impact,omitempty"`
}

// SuggestedEnd is SuggestedStart plus the suggested duration
func (r Recommendation) SuggestedEnd() time.Time {
	return r.SuggestedStart.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// RecommendationQuery carries the optional inputs of a recommendation request
type RecommendationQuery struct {
	// ReferenceDate defaults to now
	ReferenceDate *time.Time
	// Limit <= 0 selects the configured default; otherwise clamped to 5..10
	Limit int
	// CurrentMood overrides the latest mood trend value (1-5)
	CurrentMood *int
	// ExternalContext is free text passed to an optional enricher
	ExternalContext string
	// Location buckets days; the service default when nil
	Location *time.Location
}

// RecommendationQueryParams is the HTTP query form of RecommendationQuery
type RecommendationQueryParams struct {
	Date        string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=50"`
	CurrentMood *int   `form:"current_mood" binding:"omitempty"`
	Context     string `form:"context" binding:"omitempty,max=2000"`
	TZ          string `form:"tz" binding:"omitempty,timezone"`
}

// RecommendationsResponse wraps the list returned by the API
type RecommendationsResponse struct {
	ReferenceDate   time.Time        `json:"reference_date"`
	Recommendations []Recommendation `json:"recommendations"`
}
