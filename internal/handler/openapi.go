package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/server"
)

const openAPIUIPath = "static/openapi.html"

// OpenAPIHandler serves the interactive API docs. The page loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	uiPath string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		uiPath:  openAPIUIPath,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := os.ReadFile(h.uiPath)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
