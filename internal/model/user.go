package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role enumerates user privilege levels.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
	// RoleAdmin may mutate any recipe regardless of authorship.
	RoleAdmin Role = "admin"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Save(ctx context.Context, user User) (User, error)
}

// User represents a stored user with authentication material.
// Email is stored trimmed and lowercased; PasswordHash never leaves the server.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
