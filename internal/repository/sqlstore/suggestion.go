package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

const suggestionColumns = `id, user_id, type, event_id, related_event_id, description, reason,
	priority, suggested_start, confidence, status, fingerprint, created_at, expires_at,
	responded_at, response_comment`

type suggestionRepository struct {
	db *sql.DB
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func scanSuggestion(row scanner) (models.ScheduleSuggestion, error) {
	var (
		s           models.ScheduleSuggestion
		typ, status string
	)
	err := row.Scan(&s.ID, &s.UserID, &typ, &s.EventID, &s.RelatedEventID, &s.Description, &s.Reason,
		&s.Priority, &s.SuggestedStart, &s.Confidence, &status, &s.Fingerprint, &s.CreatedAt, &s.ExpiresAt,
		&s.RespondedAt, &s.ResponseComment)
	if err != nil {
		return s, err
	}

	s.Type = models.SuggestionType(typ)
	s.Status = models.SuggestionStatus(status)
	if !s.Type.Valid() || !s.Status.Valid() {
		return s, fmt.Errorf("suggestion %s has unknown type %q or status %q", s.ID, typ, status)
	}
	return s, nil
}

func (r *suggestionRepository) Create(ctx context.Context, s *models.ScheduleSuggestion) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_suggestions (`+suggestionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.UserID, string(s.Type), s.EventID, s.RelatedEventID, s.Description, s.Reason,
		s.Priority, utcPtr(s.SuggestedStart), s.Confidence, string(s.Status), s.Fingerprint,
		s.CreatedAt.UTC(), s.ExpiresAt.UTC(), utcPtr(s.RespondedAt), s.ResponseComment)
	if err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}
	return nil
}

func (r *suggestionRepository) Update(ctx context.Context, s *models.ScheduleSuggestion) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedule_suggestions SET
			status = $1, suggested_start = $2, confidence = $3, priority = $4,
			responded_at = $5, response_comment = $6
		WHERE id = $7`,
		string(s.Status), utcPtr(s.SuggestedStart), s.Confidence, s.Priority,
		utcPtr(s.RespondedAt), s.ResponseComment, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("suggestion %s: %w", s.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*models.ScheduleSuggestion, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+suggestionColumns+` FROM schedule_suggestions WHERE id = $1`, id)

	s, err := scanSuggestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("suggestion %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}
	return &s, nil
}

func (r *suggestionRepository) GetActiveByUserID(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+suggestionColumns+` FROM schedule_suggestions
		WHERE user_id = $1 AND status IN ($2, $3)
		ORDER BY created_at, id`,
		userID, string(models.StatusPending), string(models.StatusPostponed))
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []models.ScheduleSuggestion{}
	for rows.Next() {
		s, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}
	return suggestions, nil
}

func (r *suggestionRepository) ExpireOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedule_suggestions SET status = $1
		WHERE user_id = $2 AND status = $3 AND created_at < $4`,
		string(models.StatusExpired), userID, string(models.StatusPending), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to expire suggestions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count expired suggestions: %w", err)
	}
	return int(n), nil
}

func (r *suggestionRepository) ListUserIDsWithPending(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id FROM schedule_suggestions WHERE status = $1 ORDER BY user_id`,
		string(models.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}
	return userIDs, nil
}
