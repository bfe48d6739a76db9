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

const eventColumns = `e.id, e.user_id, e.title, e.description, e.start_time, e.end_time,
	e.category_id, e.mood_rating, e.created_at, e.updated_at, c.name, c.color`

const eventFrom = ` FROM events e LEFT JOIN categories c ON c.id = e.category_id`

type scanner interface {
	Scan(dest ...any) error
}

type eventRepository struct {
	db *sql.DB
}

func scanEvent(row scanner) (models.Event, error) {
	var (
		e           models.Event
		name, color *string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.CategoryID, &e.MoodRating, &e.CreatedAt, &e.UpdatedAt, &name, &color)
	if err != nil {
		return e, err
	}

	if e.CategoryID != nil && name != nil {
		e.Category = &models.Category{ID: *e.CategoryID, UserID: e.UserID, Name: *name}
		if color != nil {
			e.Category.Color = *color
		}
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+eventFrom+` WHERE e.id = $1`, id)

	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

func (r *eventRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+eventFrom+`
		WHERE e.user_id = $1 AND e.start_time >= $2 AND e.start_time < $3
		ORDER BY e.start_time, e.id`,
		userID, startDate.UTC(), endDate.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (r *eventRepository) UpdateTimes(ctx context.Context, id string, start, end time.Time) (*models.Event, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET start_time = $1, end_time = $2, updated_at = $3 WHERE id = $4`,
		start.UTC(), end.UTC(), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

func (r *eventRepository) CreateBatch(ctx context.Context, events []models.Event) ([]models.Event, error) {
	if len(events) == 0 {
		return []models.Event{}, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	created := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.StartTime = e.StartTime.UTC()
		e.EndTime = e.EndTime.UTC()
		e.CreatedAt = now
		e.UpdatedAt = now
		e.Category = nil

		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (id, user_id, title, description, start_time, end_time,
				category_id, mood_rating, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				title = excluded.title, description = excluded.description,
				start_time = excluded.start_time, end_time = excluded.end_time,
				category_id = excluded.category_id, mood_rating = excluded.mood_rating,
				updated_at = excluded.updated_at`,
			e.ID, e.UserID, e.Title, e.Description, e.StartTime, e.EndTime,
			e.CategoryID, e.MoodRating, e.CreatedAt, e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to batch create events: %w", err)
		}
		created = append(created, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit events: %w", err)
	}
	return created, nil
}
