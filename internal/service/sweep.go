package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

// SweepResult reports one expiry sweep
type SweepResult struct {
	Users   int `json:"users"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

// Sweeper expires stale pending suggestions for every user that has any
type Sweeper struct {
	suggestionRepo repository.SuggestionRepository
	schedule       ScheduleService
	concurrency    int
}

// NewSweeper creates a sweeper running at most concurrency users at once
func NewSweeper(suggestionRepo repository.SuggestionRepository, schedule ScheduleService, concurrency int) *Sweeper {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Sweeper{suggestionRepo: suggestionRepo, schedule: schedule, concurrency: concurrency}
}

// Sweep keeps going past per-user failures and returns them joined
func (s *Sweeper) Sweep(ctx context.Context) (SweepResult, error) {
	log := logger.Ctx(ctx)

	userIDs, err := s.suggestionRepo.ListUserIDsWithPending(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("failed to list users: %w", err)
	}

	var expired, failed atomic.Int64
	p := pool.New().WithMaxGoroutines(s.concurrency).WithErrors().WithContext(ctx)
	for _, userID := range userIDs {
		p.Go(func(ctx context.Context) error {
			n, err := s.schedule.ExpireStale(ctx, userID)
			if err != nil {
				failed.Add(1)
				return fmt.Errorf("user %s: %w", userID, err)
			}
			expired.Add(int64(n))
			return nil
		})
	}
	err = p.Wait()

	result := SweepResult{Users: len(userIDs), Expired: int(expired.Load()), Failed: int(failed.Load())}
	log.Info("suggestion expiry sweep finished",
		logger.Int("users", result.Users),
		logger.Int("expired", result.Expired),
		logger.Int("failed", result.Failed),
	)

	return result, err
}
