package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/middleware"
	"github.com/deppfellow/villains-api/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// HealthHandler serves GET /status.
type HealthHandler struct {
	Handler
	checks map[string]CheckFunc
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := make(map[string]CheckFunc)
	if s.DB != nil {
		checks["database"] = s.DB.Pool.Ping
	}
	if s.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth runs every enabled dependency check and answers 200 when all
// pass, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      statusHealthy,
		Timestamp:   start.UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	for name, check := range h.checks {
		if !obs.HealthCheckEnabled(name) {
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
		checkStart := time.Now()
		err := check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			response.Status = statusUnhealthy
			response.Checks[name] = checkResult{
				Status:       statusUnhealthy,
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(map[string]any{
				"check_type":       name,
				"error_type":       name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		response.Checks[name] = checkResult{
			Status:       statusHealthy,
			ResponseTime: elapsed.String(),
		}
		logger.Debug().
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if response.Status != statusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		h.recordFailure(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(attrs map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	attrs["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attrs)
}
