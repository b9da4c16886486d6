package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cobranza/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck checks one dependency
type HealthCheck func(ctx context.Context) error

// HealthResponse reports the state of the service and its dependencies
// @Description Health status
type HealthResponse struct {
	Status string            `json:"status" example:"healthy"`
	Checks map[string]string `json:"checks,omitempty"`
	Uptime string            `json:"uptime" example:"1h30m45s"`
}

// HealthHandler serves the health endpoint
type HealthHandler struct {
	checks    map[string]HealthCheck
	timeout   time.Duration
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:    checks,
		timeout:   2 * time.Second,
		startTime: time.Now(),
	}
}

// Health godoc
// @ID           getHealth
// @Summary      Health check
// @Description  Pings the database and cache. Any failure answers 503.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status: "healthy",
		Checks: make(map[string]string, len(h.checks)),
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			resp.Checks[name] = err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	body := dto.NewSuccessResponse(resp)
	body.Success = status == http.StatusOK
	c.JSON(status, body)
}
