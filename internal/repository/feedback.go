package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

type feedbackRepository struct {
	client *supabase.Client
}

// NewFeedbackRepository creates a new Supabase-backed feedback repository
func NewFeedbackRepository(client *supabase.Client) FeedbackRepository {
	return &feedbackRepository{client: client}
}

func (r *feedbackRepository) Upsert(ctx context.Context, feedback *models.RecommendationFeedback) error {
	// Every column is sent so a resubmission clears notes or mood_after
	data := map[string]interface{}{
		"user_id":           feedback.UserID,
		"recommendation_id": feedback.RecommendationID,
		"accepted":          feedback.Accepted,
		"notes":             feedback.Notes,
		"mood_after":        feedback.MoodAfter,
		"submitted_at":      feedback.SubmittedAt.UTC(),
	}

	if _, err := r.client.Upsert(ctx, "recommendation_feedback", data, "user_id,recommendation_id"); err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}

	return nil
}

func (r *feedbackRepository) GetSince(ctx context.Context, userID string, since time.Time) ([]models.RecommendationFeedback, error) {
	query := supabase.Query{
		"user_id":      fmt.Sprintf("eq.%s", userID),
		"submitted_at": fmt.Sprintf("gte.%s", pgTime(since)),
		"order":        "submitted_at.asc",
	}

	body, err := r.client.Select(ctx, "recommendation_feedback", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	var feedback []models.RecommendationFeedback
	if err := json.Unmarshal(body, &feedback); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return feedback, nil
}
