// Package memory implements the repository interfaces in process memory.
// It backs the CLI when no database is configured and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

// New returns a fresh set of empty in-memory repositories
func New() repository.Repositories {
	return repository.Repositories{
		Events:      NewEventStore(),
		Moods:       NewMoodStore(),
		Feedback:    NewFeedbackStore(),
		Suggestions: NewSuggestionStore(),
	}
}

// EventStore is an in-memory EventRepository
type EventStore struct {
	mu         sync.RWMutex
	events     map[string]models.Event
	categories map[string]models.Category
}

func NewEventStore() *EventStore {
	return &EventStore{
		events:     make(map[string]models.Event),
		categories: make(map[string]models.Category),
	}
}

// AddCategory registers a category so events referencing it are expanded
func (s *EventStore) AddCategory(c models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
}

// expand must be called with the lock held
func (s *EventStore) expand(e models.Event) models.Event {
	if e.CategoryID != nil {
		if c, ok := s.categories[*e.CategoryID]; ok {
			e.Category = &c
		}
	}
	return e
}

func (s *EventStore) GetByID(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	e = s.expand(e)
	return &e, nil
}

func (s *EventStore) GetByUserIDAndDateRange(_ context.Context, userID string, startDate, endDate time.Time) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Event{}
	for _, e := range s.events {
		if e.UserID != userID || e.StartTime.Before(startDate) || !e.StartTime.Before(endDate) {
			continue
		}
		out = append(out, s.expand(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *EventStore) UpdateTimes(_ context.Context, id string, start, end time.Time) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, repository.ErrNotFound)
	}
	e.StartTime = start
	e.EndTime = end
	e.UpdatedAt = time.Now().UTC()
	s.events[id] = e

	e = s.expand(e)
	return &e, nil
}

func (s *EventStore) CreateBatch(_ context.Context, events []models.Event) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	created := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
		e.Category = nil
		s.events[e.ID] = e
		created = append(created, s.expand(e))
	}
	return created, nil
}

// MoodStore is an in-memory MoodEntryRepository
type MoodStore struct {
	mu      sync.RWMutex
	entries map[string]models.MoodEntry // user|date
}

func NewMoodStore() *MoodStore {
	return &MoodStore{entries: make(map[string]models.MoodEntry)}
}

func (s *MoodStore) GetByUserIDAndMonth(_ context.Context, userID string, year int, month time.Month) ([]models.MoodEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.MoodEntry{}
	for _, m := range s.entries {
		if m.UserID == userID && m.Date.Year() == year && m.Date.Month() == month {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *MoodStore) Upsert(_ context.Context, entry *models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := *entry
	e.Date = time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
	key := e.UserID + "|" + e.Date.Format(repository.DateLayout)
	if prev, ok := s.entries[key]; ok {
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.entries[key] = e
	return nil
}

// FeedbackStore is an in-memory FeedbackRepository
type FeedbackStore struct {
	mu   sync.RWMutex
	rows map[string]models.RecommendationFeedback // user|recommendation
}

func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{rows: make(map[string]models.RecommendationFeedback)}
}

func (s *FeedbackStore) Upsert(_ context.Context, feedback *models.RecommendationFeedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := *feedback
	key := f.UserID + "|" + f.RecommendationID
	if prev, ok := s.rows[key]; ok {
		f.ID = prev.ID
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.rows[key] = f
	return nil
}

func (s *FeedbackStore) GetSince(_ context.Context, userID string, since time.Time) ([]models.RecommendationFeedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.RecommendationFeedback{}
	for _, f := range s.rows {
		if f.UserID == userID && !f.SubmittedAt.Before(since) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.Before(out[j].SubmittedAt) })
	return out, nil
}

// Len returns the number of stored feedback rows
func (s *FeedbackStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// SuggestionStore is an in-memory SuggestionRepository
type SuggestionStore struct {
	mu          sync.RWMutex
	suggestions map[string]models.ScheduleSuggestion
}

func NewSuggestionStore() *SuggestionStore {
	return &SuggestionStore{suggestions: make(map[string]models.ScheduleSuggestion)}
}

func (s *SuggestionStore) Create(_ context.Context, suggestion *models.ScheduleSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if suggestion.ID == "" {
		suggestion.ID = uuid.NewString()
	}
	if _, exists := s.suggestions[suggestion.ID]; exists {
		return fmt.Errorf("suggestion %s already exists", suggestion.ID)
	}
	s.suggestions[suggestion.ID] = *suggestion
	return nil
}

func (s *SuggestionStore) Update(_ context.Context, suggestion *models.ScheduleSuggestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suggestions[suggestion.ID]; !ok {
		return fmt.Errorf("suggestion %s: %w", suggestion.ID, repository.ErrNotFound)
	}
	s.suggestions[suggestion.ID] = *suggestion
	return nil
}

func (s *SuggestionStore) GetByID(_ context.Context, id string) (*models.ScheduleSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sg, ok := s.suggestions[id]
	if !ok {
		return nil, fmt.Errorf("suggestion %s: %w", id, repository.ErrNotFound)
	}
	return &sg, nil
}

func (s *SuggestionStore) GetActiveByUserID(_ context.Context, userID string) ([]models.ScheduleSuggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.ScheduleSuggestion{}
	for _, sg := range s.suggestions {
		if sg.UserID == userID && sg.Status.Open() {
			out = append(out, sg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *SuggestionStore) ExpireOlderThan(_ context.Context, userID string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sg := range s.suggestions {
		if sg.UserID == userID && sg.Status == models.StatusPending && sg.CreatedAt.Before(cutoff) {
			sg.Status = models.StatusExpired
			s.suggestions[id] = sg
			n++
		}
	}
	return n, nil
}

func (s *SuggestionStore) ListUserIDsWithPending(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, sg := range s.suggestions {
		if sg.Status == models.StatusPending {
			seen[sg.UserID] = struct{}{}
		}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

var (
	_ repository.EventRepository      = (*EventStore)(nil)
	_ repository.MoodEntryRepository  = (*MoodStore)(nil)
	_ repository.FeedbackRepository   = (*FeedbackStore)(nil)
	_ repository.SuggestionRepository = (*SuggestionStore)(nil)
)
