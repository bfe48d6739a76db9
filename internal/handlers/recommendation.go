package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/apierror"
	"github.com/JonnyWalker81/tempo/internal/calendar"
	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/service"
)

const contentTypeCalendar = "text/calendar; charset=utf-8"

// RecommendationHandler serves recommendations and the analytics behind them
type RecommendationHandler struct {
	recommendations service.RecommendationService
	location        *time.Location
	now             func() time.Time
}

// NewRecommendationHandler creates a handler; dates without a tz parameter
// are read in loc
func NewRecommendationHandler(recommendations service.RecommendationService, loc *time.Location) *RecommendationHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &RecommendationHandler{
		recommendations: recommendations,
		location:        loc,
		now:             time.Now,
	}
}

// query binds the shared recommendation query string
func (h *RecommendationHandler) query(c *gin.Context) (models.RecommendationQuery, bool) {
	var params models.RecommendationQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return models.RecommendationQuery{}, false
	}

	q := models.RecommendationQuery{
		Limit:           params.Limit,
		CurrentMood:     params.CurrentMood,
		ExternalContext: params.Context,
	}

	loc := h.location
	if params.TZ != "" {
		tz, err := time.LoadLocation(params.TZ)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				{Field: "tz", Message: "must be an IANA time zone", Code: "timezone"},
			}))
			return models.RecommendationQuery{}, false
		}
		loc = tz
		q.Location = tz
	}

	if params.Date != "" {
		date, err := time.ParseInLocation(time.DateOnly, params.Date, loc)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), []apierror.FieldError{
				{Field: "date", Message: "must be a date formatted as 2006-01-02", Code: "datetime"},
			}))
			return models.RecommendationQuery{}, false
		}
		q.ReferenceDate = &date
	}

	return q, true
}

// GetRecommendations handles GET /api/v1/recommendations
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	resp, err := h.recommendations.GetRecommendations(c.Request.Context(), userID, q)
	if err != nil {
		writeServiceError(c, err, "failed to get recommendations")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRecommendationsCalendar handles GET /api/v1/recommendations.ics
func (h *RecommendationHandler) GetRecommendationsCalendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	resp, err := h.recommendations.GetRecommendations(c.Request.Context(), userID, q)
	if err != nil {
		writeServiceError(c, err, "failed to get recommendations")
		return
	}

	var buf bytes.Buffer
	if err := calendar.Encode(&buf, resp.Recommendations, h.now()); err != nil {
		if errors.Is(err, calendar.ErrEmptyCalendar) {
			c.Status(http.StatusNoContent)
			return
		}
		writeServiceError(c, err, "failed to encode recommendations calendar")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recommendations.ics"`)
	c.Data(http.StatusOK, contentTypeCalendar, buf.Bytes())
}

// GetInsights handles GET /api/v1/insights
func (h *RecommendationHandler) GetInsights(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q, ok := h.query(c)
	if !ok {
		return
	}

	analytics, err := h.recommendations.GetInsights(c.Request.Context(), userID, q)
	if err != nil {
		writeServiceError(c, err, "failed to get insights")
		return
	}

	c.JSON(http.StatusOK, analytics)
}
