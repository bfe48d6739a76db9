package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// RecommendationService turns a user's history into ranked activity suggestions
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, q models.RecommendationQuery) (*models.RecommendationsResponse, error)
	// GetInsights exposes the analytics the recommendations are built from
	GetInsights(ctx context.Context, userID string, q models.RecommendationQuery) (*models.Analytics, error)
}

// FeedbackService records and summarizes accept/reject decisions
type FeedbackService interface {
	RecordFeedback(ctx context.Context, userID string, req *models.FeedbackRequest) (*models.RecommendationFeedback, error)
	GetFeedbackSummary(ctx context.Context, userID string, periodStart time.Time) (*models.FeedbackSummary, error)
}

// ScheduleService detects calendar-health problems and manages the
// suggestion lifecycle
type ScheduleService interface {
	GenerateSuggestions(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error)
	GetPendingSuggestions(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error)
	RespondToSuggestion(ctx context.Context, userID, suggestionID string, req *models.RespondRequest) (*models.ScheduleSuggestion, error)
	// ExpireStale marks the user's old pending suggestions Expired
	ExpireStale(ctx context.Context, userID string) (int, error)
}

// Enricher optionally rewrites the wording of recommendations using
// caller-supplied context (for example a language model)
type Enricher interface {
	Enrich(ctx context.Context, recs []models.Recommendation, externalContext string) ([]models.Recommendation, error)
}
