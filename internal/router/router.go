// Package router builds the Echo instance: global middleware in order,
// system routes and the villain routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/handler"
	"github.com/deppfellow/villains-api/internal/middleware"
	"github.com/deppfellow/villains-api/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(
		m.Global.Recover(),
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Metrics.Middleware(),
		m.Global.RequestLogger(),
		m.Global.CORS(),
		m.Global.Secure(),
	)

	if m.RateLimit.Enabled() {
		e.Use(m.RateLimit.Limiter())
	}

	registerSystemRoutes(e, h, m)
	registerVillainRoutes(e, h, m)

	return e
}

func registerVillainRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	villains := e.Group("/villains")

	var writeMiddleware []echo.MiddlewareFunc
	if m.Auth.Enabled() {
		writeMiddleware = append(writeMiddleware, m.Auth.RequireAuth)
	}

	villains.GET("", handler.Handle(h.Villains.Handler, h.Villains.ListVillains, http.StatusOK))
	villains.GET("/:slug", handler.Handle(h.Villains.Handler, h.Villains.GetVillain, http.StatusOK))
	villains.POST("", handler.Handle(h.Villains.Handler, h.Villains.CreateVillain, http.StatusCreated), writeMiddleware...)
}
