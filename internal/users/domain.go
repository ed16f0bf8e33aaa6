package users

import "time"

// User represents a console account. Role is one of shared.RoleAdmin or
// shared.RoleVendedor; there are no other values.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Email        *string   `json:"email,omitempty"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
