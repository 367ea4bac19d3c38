package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/villains-api/internal/errs"
	"github.com/deppfellow/villains-api/internal/server"
)

const rateLimitMessage = "Too many requests, slow down"

// RateLimitMiddleware throttles clients by IP using Echo's in-memory
// store.
type RateLimitMiddleware struct {
	server  *server.Server
	metrics *MetricsMiddleware
}

func NewRateLimitMiddleware(s *server.Server, metrics *MetricsMiddleware) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server:  s,
		metrics: metrics,
	}
}

// Enabled reports whether server.rate_limit is positive.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit > 0
}

// Limiter allows server.rate_limit requests per second per IP with a
// burst of the same size.
func (r *RateLimitMiddleware) Limiter() echo.MiddlewareFunc {
	limit := r.server.Config.Server.RateLimit
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(limit),
			Burst: burst,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Int("status", http.StatusTooManyRequests).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(rateLimitMessage)
		},
	})
}

// RecordRateLimitHit counts a rejection in Prometheus and, when New Relic
// is enabled, as a RateLimitHit custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.metrics != nil {
		r.metrics.recordRateLimitHit(endpoint)
	}
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
