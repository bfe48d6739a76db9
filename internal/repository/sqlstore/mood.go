package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

type moodEntryRepository struct {
	db *sql.DB
}

func (r *moodEntryRepository) GetByUserIDAndMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.MoodEntry, error) {
	from, to := repository.MonthBounds(year, month)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, rating, notes, created_at FROM mood_entries
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date`,
		userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var m models.MoodEntry
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Rating, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		m.Date = m.Date.UTC()
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}
	return entries, nil
}

func (r *moodEntryRepository) Upsert(ctx context.Context, entry *models.MoodEntry) error {
	date := time.Date(entry.Date.Year(), entry.Date.Month(), entry.Date.Day(), 0, 0, 0, 0, time.UTC)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mood_entries (id, user_id, date, rating, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET rating = excluded.rating, notes = excluded.notes`,
		uuid.NewString(), entry.UserID, date, entry.Rating, entry.Notes, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert mood entry: %w", err)
	}
	return nil
}
