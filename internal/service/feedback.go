package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonnyWalker81/tempo/internal/engine"
	"github.com/JonnyWalker81/tempo/internal/logger"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/repository"
)

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	now          func() time.Time
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, opts Options) FeedbackService {
	opts = opts.withDefaults()
	return &feedbackService{feedbackRepo: feedbackRepo, now: opts.Now}
}

func (s *feedbackService) RecordFeedback(ctx context.Context, userID string, req *models.FeedbackRequest) (*models.RecommendationFeedback, error) {
	recommendationID := strings.TrimSpace(req.RecommendationID)
	if recommendationID == "" {
		return nil, invalid("recommendation_id", "is required")
	}
	if req.MoodAfter != nil && !models.ValidMoodRating(*req.MoodAfter) {
		return nil, invalid("mood_after", "must be between %d and %d", models.MinMoodRating, models.MaxMoodRating)
	}

	feedback := &models.RecommendationFeedback{
		UserID:           userID,
		RecommendationID: recommendationID,
		Accepted:         req.Accepted,
		Notes:            cleanText(req.Notes, models.MaxNotesLength),
		MoodAfter:        req.MoodAfter,
		SubmittedAt:      s.now().UTC(),
	}

	if err := s.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	logger.Ctx(ctx).Debug("recorded recommendation feedback",
		logger.String("recommendation_id", recommendationID),
		logger.Bool("accepted", req.Accepted),
	)

	return feedback, nil
}

func (s *feedbackService) GetFeedbackSummary(ctx context.Context, userID string, periodStart time.Time) (*models.FeedbackSummary, error) {
	if periodStart.After(s.now()) {
		return nil, invalid("since", "must not be in the future")
	}

	rows, err := s.feedbackRepo.GetSince(ctx, userID, periodStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return Summarize(rows, periodStart), nil
}

// Summarize counts decisions and averages mood-after values. An empty
// input yields an all-zero summary with no average.
func Summarize(rows []models.RecommendationFeedback, periodStart time.Time) *models.FeedbackSummary {
	summary := &models.FeedbackSummary{PeriodStart: periodStart, TotalFeedback: len(rows)}

	moodSum, moodCount := 0, 0
	for _, f := range rows {
		if f.Accepted {
			summary.AcceptedCount++
		} else {
			summary.RejectedCount++
		}
		if f.MoodAfter != nil {
			moodSum += *f.MoodAfter
			moodCount++
		}
	}

	if summary.TotalFeedback > 0 {
		summary.AcceptanceRate = engine.Round1(float64(summary.AcceptedCount) / float64(summary.TotalFeedback) * 100)
	}
	if moodCount > 0 {
		avg := engine.Round2(float64(moodSum) / float64(moodCount))
		summary.AverageMoodAfter = &avg
	}

	return summary
}

// cleanText trims s and cuts it to max runes; blank input becomes nil
func cleanText(s *string, max int) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if r := []rune(trimmed); len(r) > max {
		trimmed = strings.TrimSpace(string(r[:max]))
	}
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
