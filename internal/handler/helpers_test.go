package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/config"
	"github.com/deppfellow/villains-api/internal/middleware"
	"github.com/deppfellow/villains-api/internal/server"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(middleware.RequestID(), middleware.NewContextEnhancer(s).EnhanceContext())
	return e
}
