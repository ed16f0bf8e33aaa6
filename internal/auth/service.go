package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/dolcemiga/dolceweb/internal/shared"
	"github.com/dolcemiga/dolceweb/internal/users"
)

// UserFinder is the narrow slice of the users repository the login flow needs.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*users.User, error)
}

// Service wraps authentication business rules.
type Service struct {
	finder UserFinder
}

// NewService constructs a new Service.
func NewService(finder UserFinder) *Service {
	return &Service{finder: finder}
}

// Authenticate validates username/password credentials. Lookup failures,
// inactive accounts and bad passwords all collapse into the same error so
// the response does not leak which part failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.finder.FindByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}
