package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/tempo/internal/middleware"
	"github.com/JonnyWalker81/tempo/internal/service"
)

// generateRate bounds suggestion generation per user per minute
const generateRate = 10

// RouterConfig carries what the API routes need
type RouterConfig struct {
	Env         string
	Production  bool
	CORSOrigins []string

	// JWTSecret verifies tokens locally; Verifier is used when it is empty
	JWTSecret []byte
	Verifier  middleware.TokenVerifier

	Recommendations service.RecommendationService
	Feedback        service.FeedbackService
	Schedule        service.ScheduleService
	HealthChecks    map[string]HealthCheck

	// Location reads dates that carry no tz parameter
	Location *time.Location
	// Now is the handlers' clock; tests pin it
	Now func() time.Time
}

// NewRouter builds the gin engine with middleware and every route
func NewRouter(cfg RouterConfig) *gin.Engine {
	recommendationHandler := NewRecommendationHandler(cfg.Recommendations, cfg.Location)
	feedbackHandler := NewFeedbackHandler(cfg.Feedback, cfg.Location)
	scheduleHandler := NewScheduleHandler(cfg.Schedule)
	healthHandler := NewHealthHandler(cfg.Env, cfg.HealthChecks)
	if cfg.Now != nil {
		recommendationHandler.now = cfg.Now
		feedbackHandler.now = cfg.Now
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders(cfg.Production))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RateLimit())

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Auth(cfg.JWTSecret, cfg.Verifier))
	{
		v1.GET("/recommendations", recommendationHandler.GetRecommendations)
		v1.GET("/recommendations.ics", recommendationHandler.GetRecommendationsCalendar)
		v1.POST("/recommendations/feedback", feedbackHandler.RecordFeedback)
		v1.GET("/recommendations/feedback/summary", feedbackHandler.GetFeedbackSummary)
		v1.GET("/insights", recommendationHandler.GetInsights)

		suggestions := v1.Group("/schedule-suggestions")
		{
			suggestions.POST("/generate",
				middleware.RateLimitPerUser(generateRate, time.Minute, "generate"),
				scheduleHandler.GenerateSuggestions)
			suggestions.GET("/pending", scheduleHandler.GetPendingSuggestions)
			suggestions.POST("/:id/respond", scheduleHandler.RespondToSuggestion)
		}
	}

	return router
}
