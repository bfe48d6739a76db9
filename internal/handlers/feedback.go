package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/service"
)

// defaultSummaryDays is the summary period when no since date is given
const defaultSummaryDays = 30

type FeedbackHandler struct {
	feedback service.FeedbackService
	location *time.Location
	now      func() time.Time
}

func NewFeedbackHandler(feedback service.FeedbackService, loc *time.Location) *FeedbackHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &FeedbackHandler{feedback: feedback, location: loc, now: time.Now}
}

// RecordFeedback handles POST /api/v1/recommendations/feedback
func (h *FeedbackHandler) RecordFeedback(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	fb, err := h.feedback.RecordFeedback(c.Request.Context(), userID, &req)
	if err != nil {
		writeServiceError(c, err, "failed to record feedback")
		return
	}

	c.JSON(http.StatusOK, fb)
}

type summaryQuery struct {
	Since string `form:"since" binding:"omitempty,datetime=2006-01-02"`
}

// GetFeedbackSummary handles GET /api/v1/recommendations/feedback/summary
func (h *FeedbackHandler) GetFeedbackSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q summaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}

	now := h.now().In(h.location)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location).AddDate(0, 0, -defaultSummaryDays)
	if q.Since != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, q.Since, h.location)
		if err != nil {
			writeBindError(c, err)
			return
		}
		if parsed.After(now) {
			apierror.WriteProblem(c, apierror.NewFutureDateError(apierror.GetRequestID(c), "since"))
			return
		}
		since = parsed
	}

	summary, err := h.feedback.GetFeedbackSummary(c.Request.Context(), userID, since)
	if err != nil {
		writeServiceError(c, err, "failed to get feedback summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
