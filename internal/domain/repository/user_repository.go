// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"doorman/internal/domain/entity"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when an insert collides with the
	// unique constraint on usernames. The constraint, not the application
	// pre-check, is what closes the race between check and insert.
	ErrDuplicateUsername = errors.New("username already exists")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// Create persists a new user as a single atomic insert. A username
	// collision surfaces as ErrDuplicateUsername.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a single user by exact username match.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindAll retrieves every user, ordered by id.
	FindAll(ctx context.Context) ([]*entity.User, error)
}
