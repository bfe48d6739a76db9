package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/JonnyWalker81/tempo/internal/engine"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

type scheduleService struct {
	eventRepo      repository.EventRepository
	suggestionRepo repository.SuggestionRepository
	opts           Options
}

// NewScheduleService creates a new schedule suggestion service
func NewScheduleService(
	eventRepo repository.EventRepository,
	suggestionRepo repository.SuggestionRepository,
	opts Options,
) ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		suggestionRepo: suggestionRepo,
		opts:           opts.withDefaults(),
	}
}

func (s *scheduleService) ExpireStale(ctx context.Context, userID string) (int, error) {
	cutoff := s.opts.now().Add(-s.opts.SuggestionMaxAge)
	n, err := s.suggestionRepo.ExpireOlderThan(ctx, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire suggestions: %w", err)
	}
	return n, nil
}

// GenerateSuggestions expires stale suggestions, scans the coming days and
// stores a suggestion for every finding whose fingerprint has no open
// suggestion yet. It returns every open suggestion, ranked.
func (s *scheduleService) GenerateSuggestions(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error) {
	log := logger.Ctx(ctx)

	expired, err := s.ExpireStale(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.opts.now()
	start := engine.StartOfDay(now)
	events, err := s.eventRepo.GetByUserIDAndDateRange(ctx, userID, start, start.AddDate(0, 0, s.opts.DistributionDays))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming events: %w", err)
	}

	findings := engine.Detect(events, engine.DetectWindow{
		Start:            now,
		LookaheadDays:    s.opts.LookaheadDays,
		DistributionDays: s.opts.DistributionDays,
	})

	open, err := s.suggestionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open suggestions: %w", err)
	}

	known := make(map[string]bool, len(open))
	for _, sg := range open {
		known[sg.Fingerprint] = true
	}

	skipped := 0
	for _, f := range findings {
		if known[f.Fingerprint] {
			skipped++
			continue
		}
		sg := s.newSuggestion(userID, f)
		if err := s.suggestionRepo.Create(ctx, &sg); err != nil {
			return nil, fmt.Errorf("failed to create suggestion: %w", err)
		}
		known[f.Fingerprint] = true
		open = append(open, sg)
	}

	log.Debug("generated schedule suggestions",
		logger.Int("events", len(events)),
		logger.Int("findings", len(findings)),
		logger.Int("duplicates_skipped", skipped),
		logger.Int("expired", expired),
	)

	SortSuggestions(open)
	return open, nil
}

func (s *scheduleService) newSuggestion(userID string, f engine.Finding) models.ScheduleSuggestion {
	now := s.opts.now()
	priority := f.Priority
	if priority < models.PriorityMin {
		priority = models.PriorityMin
	}
	if priority > models.PriorityMax {
		priority = models.PriorityMax
	}

	return models.ScheduleSuggestion{
		ID:             NewID(),
		UserID:         userID,
		Type:           f.Type,
		EventID:        f.EventID,
		RelatedEventID: f.RelatedEventID,
		Description:    f.Description,
		Reason:         f.Reason,
		Priority:       priority,
		SuggestedStart: f.SuggestedStart,
		Confidence:     engine.ClampConfidence(f.Confidence),
		Status:         models.StatusPending,
		Fingerprint:    f.Fingerprint,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.opts.SuggestionMaxAge),
	}
}

// GetPendingSuggestions returns the user's open suggestions, ranked.
// Pending suggestions past their expiry are left out even before the
// sweep marks them.
func (s *scheduleService) GetPendingSuggestions(ctx context.Context, userID string) ([]models.ScheduleSuggestion, error) {
	open, err := s.suggestionRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open suggestions: %w", err)
	}

	cutoff := s.opts.now().Add(-s.opts.SuggestionMaxAge)
	out := make([]models.ScheduleSuggestion, 0, len(open))
	for _, sg := range open {
		if sg.Status == models.StatusPending && sg.CreatedAt.Before(cutoff) {
			continue
		}
		out = append(out, sg)
	}

	SortSuggestions(out)
	return out, nil
}

func (s *scheduleService) RespondToSuggestion(ctx context.Context, userID, suggestionID string, req *models.RespondRequest) (*models.ScheduleSuggestion, error) {
	if !req.Status.IsResponse() {
		return nil, invalid("status", "must be one of %s, %s, %s", models.StatusAccepted, models.StatusRejected, models.StatusPostponed)
	}

	if err := checkID("suggestion_id", suggestionID); err != nil {
		return nil, err
	}

	var comment *string
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if utf8.RuneCountInString(trimmed) > models.MaxNotesLength {
			return nil, invalid("comment", "must be at most %d characters", models.MaxNotesLength)
		}
		if trimmed != "" {
			comment = &trimmed
		}
	}

	sg, err := s.suggestionRepo.GetByID(ctx, suggestionID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("suggestion", suggestionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	if sg.UserID != userID {
		return nil, invalid("suggestion_id", "suggestion belongs to another user")
	}
	now := s.opts.now()
	if !sg.Status.Open() {
		return nil, invalid("status", "suggestion is already %s", sg.Status)
	}
	if sg.Status == models.StatusPending && sg.CreatedAt.Before(now.Add(-s.opts.SuggestionMaxAge)) {
		return nil, invalid("status", "suggestion has expired")
	}

	if req.Status == models.StatusAccepted {
		if err := s.apply(ctx, userID, sg); err != nil {
			return nil, err
		}
	}

	sg.Status = req.Status
	sg.RespondedAt = &now
	sg.ResponseComment = comment

	if err := s.suggestionRepo.Update(ctx, sg); err != nil {
		return nil, fmt.Errorf("failed to update suggestion: %w", err)
	}

	logger.Ctx(ctx).Info("suggestion answered",
		logger.String("suggestion_id", sg.ID),
		logger.String("type", string(sg.Type)),
		logger.String("status", string(sg.Status)),
	)

	return sg, nil
}

// apply performs the calendar change an accepted suggestion implies. Only
// MoveEvent with both a linked event and a target time changes anything;
// the event keeps its duration.
func (s *scheduleService) apply(ctx context.Context, userID string, sg *models.ScheduleSuggestion) error {
	switch sg.Type {
	case models.SuggestionMoveEvent:
		if sg.EventID == nil || sg.SuggestedStart == nil {
			return nil
		}
	case models.SuggestionResolveConflict, models.SuggestionSuggestBreak, models.SuggestionPatternAlert,
		models.SuggestionOptimizeDistribution, models.SuggestionGeneralReorganization:
		return nil
	default:
		return fmt.Errorf("unknown suggestion type %q", sg.Type)
	}

	event, err := s.eventRepo.GetByID(ctx, *sg.EventID)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("event", *sg.EventID)
	}
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event.UserID != userID {
		return invalid("event_id", "event belongs to another user")
	}

	start := *sg.SuggestedStart
	if _, err := s.eventRepo.UpdateTimes(ctx, event.ID, start, start.Add(event.Duration())); err != nil {
		return fmt.Errorf("failed to move event: %w", err)
	}
	return nil
}

// SortSuggestions orders by priority (5 first), then type rank
// (ResolveConflict first), then creation time, then id
func SortSuggestions(list []models.ScheduleSuggestion) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if ra, rb := a.Type.Rank(), b.Type.Rank(); ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
