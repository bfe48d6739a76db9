package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/tempo/internal/engine"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

// Window is the data one engine run works on
type Window struct {
	Historical []models.Event
	Upcoming   []models.Event
	Moods      []models.MoodEntry
}

// HasHistory reports whether the user has any past events or mood entries
func (w *Window) HasHistory() bool {
	return len(w.Historical) > 0 || len(w.Moods) > 0
}

type windowFetcher struct {
	events        repository.EventRepository
	moods         repository.MoodEntryRepository
	lookbackDays  int
	lookaheadDays int
}

// fetch loads [ref-lookback, ref) history, upcoming events from the start
// of ref's day through lookahead+1 days, and the mood entries of ref's
// month and the month before. The reads run concurrently; the first
// storage error cancels the rest and is returned.
func (f *windowFetcher) fetch(ctx context.Context, userID string, ref time.Time) (*Window, error) {
	g, ctx := errgroup.WithContext(ctx)

	var (
		w                Window
		current, earlier []models.MoodEntry
	)

	g.Go(func() error {
		events, err := f.events.GetByUserIDAndDateRange(ctx, userID, ref.AddDate(0, 0, -f.lookbackDays), ref)
		if err != nil {
			return fmt.Errorf("failed to fetch historical events: %w", err)
		}
		w.Historical = events
		return nil
	})

	g.Go(func() error {
		start := engine.StartOfDay(ref)
		events, err := f.events.GetByUserIDAndDateRange(ctx, userID, start, start.AddDate(0, 0, f.lookaheadDays+1))
		if err != nil {
			return fmt.Errorf("failed to fetch upcoming events: %w", err)
		}
		w.Upcoming = events
		return nil
	})

	year, month, _ := ref.Date()
	prev := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)

	g.Go(func() error {
		entries, err := f.moods.GetByUserIDAndMonth(ctx, userID, year, month)
		if err != nil {
			return fmt.Errorf("failed to fetch mood entries: %w", err)
		}
		current = entries
		return nil
	})

	g.Go(func() error {
		entries, err := f.moods.GetByUserIDAndMonth(ctx, userID, prev.Year(), prev.Month())
		if err != nil {
			return fmt.Errorf("failed to fetch mood entries: %w", err)
		}
		earlier = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	w.Moods = make([]models.MoodEntry, 0, len(earlier)+len(current))
	w.Moods = append(w.Moods, earlier...)
	w.Moods = append(w.Moods, current...)
	return &w, nil
}
