package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

type suggestionRepository struct {
	client *supabase.Client
}

// NewSuggestionRepository creates a new Supabase-backed suggestion repository
func NewSuggestionRepository(client *supabase.Client) SuggestionRepository {
	return &suggestionRepository{client: client}
}

func suggestionRow(s *models.ScheduleSuggestion) map[string]interface{} {
	return map[string]interface{}{
		"user_id":          s.UserID,
		"type":             s.Type,
		"event_id":         s.EventID,
		"related_event_id": s.RelatedEventID,
		"description":      s.Description,
		"reason":           s.Reason,
		"priority":         s.Priority,
		"suggested_start":  s.SuggestedStart,
		"confidence":       s.Confidence,
		"status":           s.Status,
		"fingerprint":      s.Fingerprint,
		"created_at":       s.CreatedAt.UTC(),
		"expires_at":       s.ExpiresAt.UTC(),
		"responded_at":     s.RespondedAt,
		"response_comment": s.ResponseComment,
	}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *models.ScheduleSuggestion) error {
	data := suggestionRow(suggestion)
	data["id"] = suggestion.ID

	if _, err := r.client.Insert(ctx, "schedule_suggestions", data); err != nil {
		return fmt.Errorf("failed to create suggestion: %w", err)
	}

	return nil
}

func (r *suggestionRepository) Update(ctx context.Context, suggestion *models.ScheduleSuggestion) error {
	query := supabase.Query{"id": fmt.Sprintf("eq.%s", suggestion.ID)}

	body, err := r.client.UpdateWhere(ctx, "schedule_suggestions", query, suggestionRow(suggestion))
	if err != nil {
		return fmt.Errorf("failed to update suggestion: %w", err)
	}

	if _, err := firstSuggestion(body); err != nil {
		return err
	}

	return nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*models.ScheduleSuggestion, error) {
	body, err := r.client.Select(ctx, "schedule_suggestions", supabase.Query{"id": fmt.Sprintf("eq.%s", id)})
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	return firstSuggestion(body)
}

func (r *suggestionRepository) GetActiveByUserID(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error) {
	query := supabase.Query{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"status":  fmt.Sprintf("in.(%s,%s)", models.StatusPending, models.StatusPostponed),
		"order":   "created_at.asc",
	}

	body, err := r.client.Select(ctx, "schedule_suggestions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions: %w", err)
	}

	var suggestions []models.ScheduleSuggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return suggestions, nil
}

func (r *suggestionRepository) ExpireOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error) {
	query := supabase.Query{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"status":     fmt.Sprintf("eq.%s", models.StatusPending),
		"created_at": fmt.Sprintf("lt.%s", pgTime(cutoff)),
		"select":     "id",
	}

	body, err := r.client.UpdateWhere(ctx, "schedule_suggestions", query, map[string]interface{}{
		"status": models.StatusExpired,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to expire suggestions: %w", err)
	}

	var expired []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &expired); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return len(expired), nil
}

func (r *suggestionRepository) ListUserIDsWithPending(ctx context.Context) ([]string, error) {
	query := supabase.Query{
		"status": fmt.Sprintf("eq.%s", models.StatusPending),
		"select": "user_id",
	}

	body, err := r.client.Select(ctx, "schedule_suggestions", query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}

	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.UserID]; ok {
			continue
		}
		seen[row.UserID] = struct{}{}
		userIDs = append(userIDs, row.UserID)
	}
	sort.Strings(userIDs)

	return userIDs, nil
}

func firstSuggestion(body []byte) (*models.ScheduleSuggestion, error) {
	var suggestions []models.ScheduleSuggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("suggestion: %w", ErrNotFound)
	}

	return &suggestions[0], nil
}
