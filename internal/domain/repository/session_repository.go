// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"doorman/internal/domain/entity"
)

// ErrSessionNotFound is returned when a session id matches nothing in the
// store. Expired sessions are reported identically to absent ones.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository is the server-side session store. Implementations are
// swappable: a relational table, a redis keyspace, or an in-process map
// for tests. The contract is the same keyed create/find/delete surface.
type SessionRepository interface {
	// Create persists a new session record with its expiry.
	Create(ctx context.Context, session *entity.Session) error

	// Find retrieves a live session by id. Absent and expired entries both
	// yield ErrSessionNotFound; implementations purge expired entries they
	// encounter so the store does not grow unboundedly.
	Find(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes a session by id, returning ErrSessionNotFound when
	// there was nothing to remove. Callers treat that as a normal outcome.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session past its expiry. Backends with
	// native TTL eviction may implement this as a no-op.
	DeleteExpired(ctx context.Context) error
}
