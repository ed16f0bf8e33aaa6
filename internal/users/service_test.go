package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dolcemiga/dolceweb/internal/shared"
)

type memUserRepository struct {
	users  map[int64]*User
	nextID int64
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[int64]*User), nextID: 1}
}

func (r *memUserRepository) List(context.Context) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepository) Get(_ context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepository) Create(_ context.Context, u User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return 0, ErrUsernameTaken
		}
	}
	u.ID = r.nextID
	r.users[u.ID] = &u
	r.nextID++
	return u.ID, nil
}

func (r *memUserRepository) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memUserRepository) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestServiceCreateHashesPassword(t *testing.T) {
	repo := newMemUserRepository()
	svc := NewService(repo)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "vendedor1",
		Name:     "Carla Soto",
		Password: "unsecretolargo",
		Role:     shared.RoleVendedor,
	})
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.NotEqual(t, "unsecretolargo", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("unsecretolargo")))
}

func TestServiceCreateDuplicateUsername(t *testing.T) {
	repo := newMemUserRepository()
	svc := NewService(repo)

	req := CreateUserRequest{Username: "admin", Name: "Admin", Password: "unsecretolargo", Role: shared.RoleAdmin}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestServiceNavigation(t *testing.T) {
	svc := NewService(newMemUserRepository())

	t.Run("admin sees every entry", func(t *testing.T) {
		entries := svc.Navigation(shared.RoleAdmin)
		labels := make([]string, 0, len(entries))
		for _, e := range entries {
			labels = append(labels, e.Label)
		}
		assert.Contains(t, labels, "Usuarios")
	})

	t.Run("vendedor never sees admin entries", func(t *testing.T) {
		for _, e := range svc.Navigation(shared.RoleVendedor) {
			assert.False(t, e.AdminOnly, "entry %q should be hidden", e.Label)
		}
	})
}
