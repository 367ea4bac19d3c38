package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/errs"
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/service"
)

type AuthMiddleware struct {
	server  *server.Server
	service *service.AuthService
}

func NewAuthMiddleware(s *server.Server, authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server:  s,
		service: authService,
	}
}

// Enabled reports whether write routes must carry a Clerk session.
func (auth *AuthMiddleware) Enabled() bool {
	return auth.service.Enabled()
}

// RequireAuth verifies the Authorization bearer token with Clerk and
// stores the session subject and role in the Echo context.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	failure := clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The Echo context is not reachable here, so the envelope is
		// written directly.
		body := errs.NewUnauthorizedError("Unauthorized", false)
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusUnauthorized)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			auth.server.Logger.Error().Err(err).Str("function", "RequireAuth").Msg("failed to write unauthorized response")
		}
	}))

	return echo.WrapMiddleware(clerkhttp.WithHeaderAuthorization(failure))(func(c echo.Context) error {
		claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
		if !ok {
			GetLogger(c).Warn().Str("function", "RequireAuth").Msg("no session claims in context")
			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.ActiveOrganizationRole)
		withUserFields(c, claims.Subject, claims.ActiveOrganizationRole)

		GetLogger(c).Debug().
			Str("function", "RequireAuth").
			Str("user_id", claims.Subject).
			Msg("user authenticated")

		return next(c)
	})
}
