// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"doorman/internal/domain/entity"
)

// SessionUsecase is the session lifecycle: create on login, load on every
// gated request, destroy on logout. Sessions live in a shared store so any
// server instance can resolve a cookie issued by another.
type SessionUsecase interface {
	// Create establishes a session for the user and returns its opaque id.
	Create(ctx context.Context, userID uint64, payload map[string]any) (string, error)

	// Load resolves a session id to its live session. Absent and expired
	// ids are indistinguishable to callers.
	Load(ctx context.Context, sessionID string) (*entity.Session, error)

	// Destroy removes a session, reporting whether one actually existed.
	// Destroying a non-existent session is a normal outcome.
	Destroy(ctx context.Context, sessionID string) (bool, error)
}
