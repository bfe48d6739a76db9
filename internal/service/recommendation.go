package service

import (
	"context"
	"time"

	"github.com/JonnyWalker81/tempo/internal/engine"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/recent"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

type recommendationService struct {
	fetcher  *windowFetcher
	recent   recent.Store
	enricher Enricher
	opts     Options
}

// NewRecommendationService creates a new recommendation service. enricher may be nil.
func NewRecommendationService(
	eventRepo repository.EventRepository,
	moodRepo repository.MoodEntryRepository,
	recentStore recent.Store,
	enricher Enricher,
	opts Options,
) RecommendationService {
	opts = opts.withDefaults()
	return &recommendationService{
		fetcher: &windowFetcher{
			events:        eventRepo,
			moods:         moodRepo,
			lookbackDays:  opts.LookbackDays,
			lookaheadDays: opts.LookaheadDays,
		},
		recent:   recentStore,
		enricher: enricher,
		opts:     opts,
	}
}

// reference resolves the request's day and clock in its location
func (s *recommendationService) reference(q models.RecommendationQuery) (ref, now time.Time) {
	loc := s.opts.Location
	if q.Location != nil {
		loc = q.Location
	}
	now = s.opts.Now().In(loc)
	ref = now
	if q.ReferenceDate != nil {
		ref = q.ReferenceDate.In(loc)
	}
	return ref, now
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userID string, q models.RecommendationQuery) (*models.RecommendationsResponse, error) {
	if q.CurrentMood != nil && !models.ValidMoodRating(*q.CurrentMood) {
		return nil, invalid("current_mood", "must be between %d and %d", models.MinMoodRating, models.MaxMoodRating)
	}

	log := logger.Ctx(ctx)
	ref, now := s.reference(q)

	w, err := s.fetcher.fetch(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	analytics := engine.BuildAnalytics(w.Historical, w.Moods, ref)
	limit := engine.ClampLimit(q.Limit, s.opts.DefaultLimit)

	result := engine.Recommend(engine.RecommendInput{
		Reference:   ref,
		Now:         now,
		Limit:       limit,
		CurrentMood: q.CurrentMood,
		Analytics:   analytics,
		Historical:  w.Historical,
		Upcoming:    w.Upcoming,
		HasHistory:  w.HasHistory(),
		SearchDays:  s.opts.LookaheadDays,
		PickVariant: s.variantPicker(ctx, userID, now),
	})

	log.Debug("recommendation passes",
		logger.Int("historical_events", len(w.Historical)),
		logger.Int("mood_entries", len(w.Moods)),
		logger.Int("category", result.Passes["category"]),
		logger.Int("mood", result.Passes["mood"]),
		logger.Int("routine", result.Passes["routine"]),
		logger.Int("fallback", result.Passes["fallback"]),
		logger.Int("returned", len(result.Recommendations)),
	)

	recs := s.enrich(ctx, result.Recommendations, q.ExternalContext, limit)
	s.remember(ctx, userID, now, recs, result.Variants)

	return &models.RecommendationsResponse{
		ReferenceDate:   engine.StartOfDay(ref),
		Recommendations: recs,
	}, nil
}

func (s *recommendationService) GetInsights(ctx context.Context, userID string, q models.RecommendationQuery) (*models.Analytics, error) {
	ref, _ := s.reference(q)

	w, err := s.fetcher.fetch(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	analytics := engine.BuildAnalytics(w.Historical, w.Moods, ref)
	return &analytics, nil
}

// variantPicker rotates self-care variants: the first one not suggested in
// the recent window wins, or the least recently suggested when all were.
// A store outage degrades to the first variant.
func (s *recommendationService) variantPicker(ctx context.Context, userID string, now time.Time) engine.VariantPicker {
	seen, err := s.recent.Since(ctx, userID, now.Add(-s.opts.RecentWindow))
	if err != nil {
		logger.Ctx(ctx).Warn("recent suggestion store unavailable, using default variants", logger.Err(err))
		return engine.FirstVariant
	}

	return func(kind engine.SelfCareKind, keys []string) string {
		if len(keys) == 0 {
			return ""
		}
		oldest := keys[0]
		var oldestAt time.Time
		for i, key := range keys {
			at, ok := seen[kind.RecentKey(key)]
			if !ok {
				return key
			}
			if i == 0 || at.Before(oldestAt) {
				oldest, oldestAt = key, at
			}
		}
		return oldest
	}
}

// remember records the self-care variants that made it into the response
func (s *recommendationService) remember(ctx context.Context, userID string, now time.Time, recs []models.Recommendation, variants map[string]string) {
	keys := make([]string, 0, len(variants))
	for _, r := range recs {
		if key, ok := variants[r.ID]; ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return
	}

	if err := s.recent.Record(ctx, userID, now, keys...); err != nil {
		logger.Ctx(ctx).Warn("failed to record recent suggestions", logger.Err(err), logger.Strings("keys", keys))
	}
}

// enrich lets the enricher reword subtitles and reasons. Everything else is
// kept from the engine output and the list is re-finalized, so a faulty
// enricher cannot break ids, ranking or bounds.
func (s *recommendationService) enrich(ctx context.Context, recs []models.Recommendation, externalContext string, limit int) []models.Recommendation {
	if s.enricher == nil || len(recs) == 0 {
		return recs
	}

	enriched, err := s.enricher.Enrich(ctx, append([]models.Recommendation(nil), recs...), externalContext)
	if err != nil {
		logger.Ctx(ctx).Warn("recommendation enrichment failed", logger.Err(err))
		return recs
	}

	byID := make(map[string]models.Recommendation, len(enriched))
	for _, r := range enriched {
		byID[r.ID] = r
	}

	out := make([]models.Recommendation, len(recs))
	for i, r := range recs {
		if e, ok := byID[r.ID]; ok {
			if e.Subtitle != "" {
				r.Subtitle = e.Subtitle
			}
			if e.Reason != "" {
				r.Reason = e.Reason
			}
		}
		out[i] = r
	}
	return engine.Finalize(out, limit)
}
