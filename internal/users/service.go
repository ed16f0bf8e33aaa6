package users

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dolcemiga/dolceweb/internal/shared"
)

// CreateUserRequest carries the fields for a new account. Passwords are
// hashed before they touch storage; the clear value never leaves this call.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=40"`
	Name     string  `json:"name" validate:"required,max=120"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=admin vendedor"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

// Service wraps user administration rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every account, password hashes included for internal use only.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Create hashes the password and stores the new account as active.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		Email:        req.Email,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id
	return &u, nil
}

// SetActive toggles the active flag.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

// Delete removes an account. The confirmation prompt is the client's
// responsibility; the server executes unconditionally.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Navigation returns the menu entries visible to the given role.
func (s *Service) Navigation(role string) []NavEntry {
	out := make([]NavEntry, 0, len(navEntries))
	for _, e := range navEntries {
		if e.AdminOnly && role != shared.RoleAdmin {
			continue
		}
		out = append(out, e)
	}
	return out
}
