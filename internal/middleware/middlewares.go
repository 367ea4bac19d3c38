package middleware

import (
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/service"
)

// Middlewares groups every middleware component so the router receives
// one value.
type Middlewares struct {
	Global          *GlobalMiddlewares
	Auth            *AuthMiddleware
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server, authService *service.AuthService) *Middlewares {
	metrics := NewMetricsMiddleware()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Auth:            NewAuthMiddleware(s, authService),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s.LoggerService.GetApplication()),
		Metrics:         metrics,
		RateLimit:       NewRateLimitMiddleware(s, metrics),
	}
}
