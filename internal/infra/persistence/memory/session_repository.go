// Package memory implements the session store as an in-process map. It is
// the test backend and a single-node fallback; it cannot be shared across
// server instances.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"
)

// sessionRepository guards its map with an RWMutex; expired entries are
// purged lazily on access and wholesale by DeleteExpired.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*entity.Session
}

// NewSessionRepository is the constructor for the in-memory session store.
func NewSessionRepository() repository.SessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*entity.Session),
	}
}

// Create stores a copy of the session so later mutation by the caller
// cannot bypass the store.
func (repo *sessionRepository) Create(_ context.Context, session *entity.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	stored := *session
	stored.Payload = maps.Clone(session.Payload)
	repo.sessions[session.ID] = &stored

	return nil
}

// Find retrieves a live session. An expired entry is deleted on sight and
// reported exactly like a missing one.
func (repo *sessionRepository) Find(_ context.Context, id string) (*entity.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, ok := repo.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if stored.Expired(time.Now()) {
		delete(repo.sessions, id)

		return nil, repository.ErrSessionNotFound
	}

	found := *stored
	found.Payload = maps.Clone(stored.Payload)

	return &found, nil
}

// Delete removes a session, reporting ErrSessionNotFound when absent.
func (repo *sessionRepository) Delete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(repo.sessions, id)

	return nil
}

// DeleteExpired purges every expired entry.
func (repo *sessionRepository) DeleteExpired(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := time.Now()
	for id, stored := range repo.sessions {
		if stored.Expired(now) {
			delete(repo.sessions, id)
		}
	}

	return nil
}
