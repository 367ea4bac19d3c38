package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/logger"
	"github.com/deppfellow/villains-api/internal/server"
)

const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"
	LoggerKey   = "logger"
)

// ContextEnhancer attaches a request-scoped logger to every request.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext builds a logger carrying request_id, method, path, ip and
// trace ids, and stores it both in the Echo context and in the request's
// context.Context so services can use zerolog.Ctx. RequireAuth adds the
// user fields once a session is verified.
//
// Must run after RequestID and the New Relic middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			setLogger(c, contextLogger)

			return next(c)
		}
	}
}

// withUserFields extends the request logger with the authenticated user.
func withUserFields(c echo.Context, userID, role string) {
	fields := GetLogger(c).With().Str(UserIDKey, userID)
	if role != "" {
		fields = fields.Str(UserRoleKey, role)
	}
	setLogger(c, fields.Logger())
}

func setLogger(c echo.Context, l zerolog.Logger) {
	c.Set(LoggerKey, &l)
	c.SetRequest(c.Request().WithContext(l.WithContext(c.Request().Context())))
}

func GetUserID(c echo.Context) string {
	if userID, ok := c.Get(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// GetLogger returns the request-scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
