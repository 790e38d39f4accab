package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"doorman/config"
	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"
	"doorman/internal/infra/persistence/memory"
	"doorman/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService(t *testing.T, ttl time.Duration) usecase.SessionUsecase {
	t.Helper()

	return NewSessionService(SessionServiceParams{
		SessionRepo: memory.NewSessionRepository(),
		Config: &config.Config{
			Session: config.SessionConfig{TTL: ttl},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestSessionService_CreateAndLoad(t *testing.T) {
	srv := newTestSessionService(t, time.Hour)

	before := time.Now()
	sessionID, err := srv.Create(context.Background(), 42, map[string]any{
		entity.SessionKeyUsername: "sue",
	})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	session, err := srv.Load(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), session.UserID)
	assert.Equal(t, "sue", session.Payload[entity.SessionKeyUsername])

	// Absolute expiry stamped at creation, not refreshed on access.
	assert.WithinDuration(t, before.Add(time.Hour), session.ExpiresAt, time.Minute)
}

func TestSessionService_Load_EmptyAndUnknown(t *testing.T) {
	srv := newTestSessionService(t, time.Hour)

	_, err := srv.Load(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	_, err = srv.Load(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionService_Load_Expired(t *testing.T) {
	srv := newTestSessionService(t, -time.Minute)

	sessionID, err := srv.Create(context.Background(), 42, nil)
	require.NoError(t, err)

	_, err = srv.Load(context.Background(), sessionID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionService_Destroy(t *testing.T) {
	srv := newTestSessionService(t, time.Hour)

	sessionID, err := srv.Create(context.Background(), 42, nil)
	require.NoError(t, err)

	existed, err := srv.Destroy(context.Background(), sessionID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = srv.Destroy(context.Background(), sessionID)
	require.NoError(t, err)
	assert.False(t, existed)

	existed, err = srv.Destroy(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, existed)
}
