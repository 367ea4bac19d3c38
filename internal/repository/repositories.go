package repository

import (
	"github.com/deppfellow/villains-api/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	Villains *VillainRepository
}

// NewRepositories builds the repositories on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Villains: NewVillainRepository(s.DB.Pool),
	}
}
