package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/pkg/supabase"
)

// DateLayout is the wire and column format of calendar dates
const DateLayout = "2006-01-02"

// moodRow mirrors mood_entries, whose date column is a plain DATE
type moodRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Rating    int       `json:"rating"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (r moodRow) toModel() (models.MoodEntry, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("invalid mood date %q: %w", r.Date, err)
	}
	return models.MoodEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      date,
		Rating:    r.Rating,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
	}, nil
}

type moodEntryRepository struct {
	client *supabase.Client
}

// NewMoodEntryRepository creates a new Supabase-backed mood repository
func NewMoodEntryRepository(client *supabase.Client) MoodEntryRepository {
	return &moodEntryRepository{client: client}
}

// MonthBounds returns the first day of the month and of the month after
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, 0)
}

func (r *moodEntryRepository) GetByUserIDAndMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.MoodEntry, error) {
	from, to := MonthBounds(year, month)
	query := supabase.Query{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"and":     fmt.Sprintf("(date.gte.%s,date.lt.%s)", from.Format(DateLayout), to.Format(DateLayout)),
		"order":   "date.asc",
	}

	body, err := r.client.Select(ctx, "mood_entries", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var rows []moodRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	entries := make([]models.MoodEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (r *moodEntryRepository) Upsert(ctx context.Context, entry *models.MoodEntry) error {
	data := map[string]interface{}{
		"user_id": entry.UserID,
		"date":    entry.Date.Format(DateLayout),
		"rating":  entry.Rating,
		"notes":   entry.Notes,
	}

	if _, err := r.client.Upsert(ctx, "mood_entries", data, "user_id,date"); err != nil {
		return fmt.Errorf("failed to upsert mood entry: %w", err)
	}

	return nil
}
