package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/models"
	"github.com/JonnyWalker81/tempo/internal/service"
)

// ScheduleHandler handles schedule suggestion requests
type ScheduleHandler struct {
	schedule service.ScheduleService
}

func NewScheduleHandler(schedule service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule}
}

type suggestionsResponse struct {
	Suggestions []models.ScheduleSuggestion `json:"suggestions"`
}

// GenerateSuggestions handles POST /api/v1/schedule-suggestions/generate.
// Every open suggestion is returned; reruns do not duplicate findings.
func (h *ScheduleHandler) GenerateSuggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	suggestions, err := h.schedule.GenerateSuggestions(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "failed to generate schedule suggestions")
		return
	}

	c.JSON(http.StatusOK, suggestionsResponse{Suggestions: nonNil(suggestions)})
}

// GetPendingSuggestions handles GET /api/v1/schedule-suggestions/pending
func (h *ScheduleHandler) GetPendingSuggestions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	pending, err := h.schedule.GetPendingSuggestions(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err, "failed to get pending suggestions")
		return
	}

	c.JSON(http.StatusOK, suggestionsResponse{Suggestions: nonNil(pending)})
}

// RespondToSuggestion handles POST /api/v1/schedule-suggestions/:id/respond
func (h *ScheduleHandler) RespondToSuggestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	sg, err := h.schedule.RespondToSuggestion(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeServiceError(c, err, "failed to respond to suggestion")
		return
	}

	c.JSON(http.StatusOK, sg)
}

func nonNil(s []models.ScheduleSuggestion) []models.ScheduleSuggestion {
	if s == nil {
		return []models.ScheduleSuggestion{}
	}
	return s
}
