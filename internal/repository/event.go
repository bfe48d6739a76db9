package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

const eventSelect = "*,category:categories(*)"

type eventRepository struct {
	client *supabase.Client
}

// NewEventRepository creates a new Supabase-backed event repository
func NewEventRepository(client *supabase.Client) EventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	query := supabase.Query{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": eventSelect,
	}

	body, err := r.client.Select(ctx, "events", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return firstEvent(body)
}

func (r *eventRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Event, error) {
	query := supabase.Query{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  eventSelect,
		"and":     fmt.Sprintf("(start_time.gte.%s,start_time.lt.%s)", pgTime(startDate), pgTime(endDate)),
		"order":   "start_time.asc",
	}

	body, err := r.client.Select(ctx, "events", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	var events []models.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return events, nil
}

func (r *eventRepository) UpdateTimes(ctx context.Context, id string, start, end time.Time) (*models.Event, error) {
	data := map[string]interface{}{
		"start_time": start.UTC(),
		"end_time":   end.UTC(),
		"updated_at": time.Now().UTC(),
	}

	body, err := r.client.UpdateWhere(ctx, "events", supabase.Query{"id": fmt.Sprintf("eq.%s", id)}, data)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return firstEvent(body)
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []models.Event) ([]models.Event, error) {
	if len(events) == 0 {
		return []models.Event{}, nil
	}

	// PostgREST requires every object in a batch insert to carry the same keys
	insertData := make([]map[string]interface{}, 0, len(events))
	for _, event := range events {
		id := event.ID
		if id == "" {
			id = uuid.NewString()
		}
		data := map[string]interface{}{
			"id":          id,
			"user_id":     event.UserID,
			"title":       event.Title,
			"description": event.Description,
			"start_time":  event.StartTime.UTC(),
			"end_time":    event.EndTime.UTC(),
			"category_id": event.CategoryID,
			"mood_rating": event.MoodRating,
		}
		insertData = append(insertData, data)
	}

	body, err := r.client.Upsert(ctx, "events", insertData, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to batch create events: %w", err)
	}

	var created []models.Event
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return created, nil
}

func firstEvent(body []byte) (*models.Event, error) {
	var events []models.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("event: %w", ErrNotFound)
	}

	return &events[0], nil
}

// pgTime formats t for a PostgREST filter value
func pgTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
