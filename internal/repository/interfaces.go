package repository

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/JonnyWalker81/tempo/internal/models"
)

// EventRepository defines the interface for calendar event data access
type EventRepository interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
	// GetByUserIDAndDateRange returns events with start in [startDate, endDate),
	// ordered by start time, with the category relation expanded
	GetByUserIDAndDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.Event, error)
	UpdateTimes(ctx context.Context, id string, start, end time.Time) (*models.Event, error)
	// CreateBatch stores events, replacing existing ones with the same id
	CreateBatch(ctx context.Context, events []models.Event) ([]models.Event, error)
}

// MoodEntryRepository defines the interface for daily mood data access
type MoodEntryRepository interface {
	GetByUserIDAndMonth(ctx context.Context, userID string, year int, month time.Month) ([]models.MoodEntry, error)
	// Upsert stores the single entry for (user, date)
	Upsert(ctx context.Context, entry *models.MoodEntry) error
}

// FeedbackRepository defines the interface for recommendation feedback data access
type FeedbackRepository interface {
	// Upsert keeps one row per (user, recommendation id); last write wins
	Upsert(ctx context.Context, feedback *models.RecommendationFeedback) error
	GetSince(ctx context.Context, userID string, since time.Time) ([]models.RecommendationFeedback, error)
}

// SuggestionRepository defines the interface for schedule suggestion data access
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.ScheduleSuggestion) error
	Update(ctx context.Context, suggestion *models.ScheduleSuggestion) error
	GetByID(ctx context.Context, id string) (*models.ScheduleSuggestion, error)
	// GetActiveByUserID returns Pending and Postponed suggestions
	GetActiveByUserID(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error)
	// ExpireOlderThan marks Pending suggestions created before cutoff as
	// Expired and returns how many changed
	ExpireOlderThan(ctx context.Context, userID string, cutoff time.Time) (int, error)
	ListUserIDsWithPending(ctx context.Context) ([]string, error)
}

// Repositories bundles one implementation of every store
type Repositories struct {
	Events      EventRepository
	Moods       MoodEntryRepository
	Feedback    FeedbackRepository
	Suggestions SuggestionRepository
}
