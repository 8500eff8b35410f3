package auth

import (
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/identity"
)

// AuthManager turns a provider-confirmed login into a signed session token and
// verifies tokens presented on later requests. There is no local account
// state; the token is the whole session.
type AuthManager interface {
	CreateSessionToken(user identity.User) (string, error)
	Parse(tokenStr string) (*Claims, error)
}

type jwtManager struct {
	generator *jwtGenerator
}

func NewJWTManager(cfg config.Config) (AuthManager, error) {
	generator, err := newJWTGenerator(cfg)
	if err != nil {
		return nil, err
	}

	return &jwtManager{generator: generator}, nil
}

func (m *jwtManager) CreateSessionToken(user identity.User) (string, error) {
	return m.generator.newSessionToken(user)
}

func (m *jwtManager) Parse(tokenStr string) (*Claims, error) {
	return m.generator.parseSession(tokenStr)
}
