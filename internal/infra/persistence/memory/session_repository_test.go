package memory

import (
	"context"
	"testing"
	"time"

	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(id string, ttl time.Duration) *entity.Session {
	return &entity.Session{
		ID:     id,
		UserID: 1,
		Payload: map[string]any{
			entity.SessionKeyUserID:   uint64(1),
			entity.SessionKeyUsername: "bob",
		},
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionRepository_CreateAndFind(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession("abc", time.Hour)
	require.NoError(t, repo.Create(ctx, session))

	found, err := repo.Find(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), found.UserID)
	assert.Equal(t, "bob", found.Payload[entity.SessionKeyUsername])
	assert.False(t, found.CreatedAt.IsZero())
}

func TestSessionRepository_FindMissing(t *testing.T) {
	repo := NewSessionRepository()

	_, err := repo.Find(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_ExpiredBehavesLikeAbsent(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession("stale", -time.Minute)
	require.NoError(t, repo.Create(ctx, session))

	_, err := repo.Find(ctx, "stale")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	// The lazy purge removed the entry, so deleting now reports not-found.
	assert.ErrorIs(t, repo.Delete(ctx, "stale"), repository.ErrSessionNotFound)
}

func TestSessionRepository_DeleteIsIdempotentAtTheCallerLevel(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession("once", time.Hour)
	require.NoError(t, repo.Create(ctx, session))

	require.NoError(t, repo.Delete(ctx, "once"))
	assert.ErrorIs(t, repo.Delete(ctx, "once"), repository.ErrSessionNotFound)
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestSession("live", time.Hour)))
	require.NoError(t, repo.Create(ctx, newTestSession("dead", -time.Minute)))

	require.NoError(t, repo.DeleteExpired(ctx))

	_, err := repo.Find(ctx, "live")
	assert.NoError(t, err)
	_, err = repo.Find(ctx, "dead")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_StoredCopyIsIsolated(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	session := newTestSession("iso", time.Hour)
	require.NoError(t, repo.Create(ctx, session))

	// Mutating the caller's payload must not reach the stored copy.
	session.Payload[entity.SessionKeyUsername] = "mallory"

	found, err := repo.Find(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, "bob", found.Payload[entity.SessionKeyUsername])
}
