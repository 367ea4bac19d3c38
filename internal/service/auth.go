package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/villains-api/internal/server"
)

// AuthService configures the Clerk SDK used by the auth middleware.
type AuthService struct {
	server *server.Server
}

// NewAuthService registers the Clerk secret key globally. Without a key
// the SDK is left untouched and write protection stays off.
func NewAuthService(s *server.Server) *AuthService {
	if key := s.Config.Auth.SecretKey; key != "" {
		clerk.SetKey(key)
	}
	return &AuthService{server: s}
}

// Enabled reports whether POST routes should require a session.
func (a *AuthService) Enabled() bool {
	return a.server.Config.Auth.ProtectWrites && a.server.Config.Auth.SecretKey != ""
}
