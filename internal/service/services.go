package service

import (
	"github.com/deppfellow/villains-api/internal/repository"
	"github.com/deppfellow/villains-api/internal/server"
)

type Services struct {
	Auth     *AuthService
	Villains *VillainService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	var notifier VillainCreatedNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Auth:     NewAuthService(s),
		Villains: NewVillainService(repos.Villains, notifier),
	}
}
