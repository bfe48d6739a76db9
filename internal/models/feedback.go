package models

import "time"

// MaxNotesLength bounds feedback notes and suggestion comments, in characters
const MaxNotesLength = 500

// RecommendationFeedback is the single stored decision of a user on a
// recommendation. There is at most one per (UserID, RecommendationID).
type RecommendationFeedback struct {
	ID               string    `json:"id,omitempty"`
	UserID           string    `json:"user_id"`
	RecommendationID string    `json:"recommendation_id"`
	Accepted         bool      `json:"accepted"`
	Notes            *string   `json:"notes,omitempty"`
	MoodAfter        *int      `json:"mood_after,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// FeedbackRequest is the body of POST /recommendations/feedback
type FeedbackRequest struct {
	RecommendationID string  `json:"recommendation_id" binding:"required,max=200"`
	Accepted         bool    `json:"accepted"`
	Notes            *string `json:"notes,omitempty"`
	MoodAfter        *int    `json:"mood_after,omitempty"`
}

// FeedbackSummary aggregates feedback submitted since PeriodStart
type FeedbackSummary struct {
	PeriodStart      time.Time `json:"period_start"`
	TotalFeedback    int       `json:"total_feedback"`
	AcceptedCount    int       `json:"accepted_count"`
	RejectedCount    int       `json:"rejected_count"`
	AcceptanceRate   float64   `json:"acceptance_rate"` // percent, 1 decimal
	AverageMoodAfter *float64  `json:"average_mood_after"`
}
