// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"doorman/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public identity. The
// password hash never crosses this boundary outward.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the established session and the greeting for the
// client. The delivery layer is responsible for turning SessionID into a
// signed cookie; no cookie exists before this point.
type LoginOutput struct {
	SessionID string
	Message   string
	User      *entity.User
}

// LogoutStatus distinguishes the two successful logout outcomes. Logging
// out without a session is normal, not an error.
type LogoutStatus int

const (
	// LogoutStatusLoggedOut means a live session existed and was destroyed.
	LogoutStatusLoggedOut LogoutStatus = iota
	// LogoutStatusNoSession means there was nothing to destroy.
	LogoutStatusNoSession
)

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register validates, hashes and persists a new user. It never
	// establishes a session.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and, only on success, establishes a session.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout destroys the referenced session. An empty or stale session id
	// yields LogoutStatusNoSession, which is still success.
	Logout(ctx context.Context, sessionID string) (LogoutStatus, error)
}
