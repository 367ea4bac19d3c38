package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/handler"
	"github.com/deppfellow/villains-api/internal/middleware"
)

// registerSystemRoutes mounts health, metrics and docs.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	e.GET("/status", h.Health.CheckHealth)
	e.GET("/metrics", echo.WrapHandler(m.Metrics.Handler()))

	e.Static("/static", "static")
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
