package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/villains-api/internal/model"
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/service"
)

type VillainHandler struct {
	Handler
	villains *service.VillainService
}

func NewVillainHandler(s *server.Server, villains *service.VillainService) *VillainHandler {
	return &VillainHandler{
		Handler:  NewHandler(s),
		villains: villains,
	}
}

// ListVillains serves GET /villains.
func (h *VillainHandler) ListVillains(c echo.Context, _ *model.ListVillainsRequest) ([]model.Villain, error) {
	return h.villains.List(c.Request().Context())
}

// GetVillain serves GET /villains/:slug.
func (h *VillainHandler) GetVillain(c echo.Context, req *model.GetVillainRequest) (*model.Villain, error) {
	return h.villains.GetBySlug(c.Request().Context(), req.DecodedSlug())
}

// CreateVillain serves POST /villains.
func (h *VillainHandler) CreateVillain(c echo.Context, req *model.CreateVillainRequest) (*model.VillainRecord, error) {
	return h.villains.Create(c.Request().Context(), req.Villain())
}
