package handler

import (
	"github.com/deppfellow/villains-api/internal/server"
	"github.com/deppfellow/villains-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Villains *VillainHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Villains: NewVillainHandler(s, services.Villains),
	}
}
