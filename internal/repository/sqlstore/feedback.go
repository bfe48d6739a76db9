package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
)

type feedbackRepository struct {
	db *sql.DB
}

// Upsert relies on the (user_id, recommendation_id) unique constraint, so
// concurrent submissions for one pair serialize in the database.
func (r *feedbackRepository) Upsert(ctx context.Context, f *models.RecommendationFeedback) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recommendation_feedback
			(id, user_id, recommendation_id, accepted, notes, mood_after, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, recommendation_id) DO UPDATE SET
			accepted = excluded.accepted,
			notes = excluded.notes,
			mood_after = excluded.mood_after,
			submitted_at = excluded.submitted_at`,
		uuid.NewString(), f.UserID, f.RecommendationID, f.Accepted, f.Notes, f.MoodAfter, f.SubmittedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) GetSince(ctx context.Context, userID string, since time.Time) ([]models.RecommendationFeedback, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, recommendation_id, accepted, notes, mood_after, submitted_at
		FROM recommendation_feedback
		WHERE user_id = $1 AND submitted_at >= $2
		ORDER BY submitted_at`,
		userID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	defer rows.Close()

	feedback := []models.RecommendationFeedback{}
	for rows.Next() {
		var f models.RecommendationFeedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.RecommendationID, &f.Accepted, &f.Notes, &f.MoodAfter, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return feedback, nil
}
