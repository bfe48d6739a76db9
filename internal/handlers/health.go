package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc/pool"

	"github.com/JonnyWalker81/tempo/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler answers GET /health by running every check concurrently
type HealthHandler struct {
	env    string
	checks map[string]HealthCheck
}

func NewHealthHandler(env string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{env: env, checks: checks}
}

type healthResponse struct {
	Status string            `json:"status"`
	Env    string            `json:"env"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]string, len(names))
	p := pool.New().WithMaxGoroutines(4)
	for i, name := range names {
		check := h.checks[name]
		p.Go(func() {
			if err := check(ctx); err != nil {
				logger.Ctx(ctx).Warn("health check failed", logger.String("check", name), logger.Err(err))
				results[i] = "unavailable"
				return
			}
			results[i] = "ok"
		})
	}
	p.Wait()

	resp := healthResponse{Status: "ok", Env: h.env}
	status := http.StatusOK
	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for i, name := range names {
		resp.Checks[name] = results[i]
		if results[i] != "ok" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, resp)
}
