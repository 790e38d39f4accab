package redis

import (
	"context"
	"encoding/json"
	"time"

	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys so the store can share a redis
// database with other data.
const keyPrefix = "session:"

// sessionRepository implements the domain.SessionRepository interface on
// redis. Expiry is delegated to redis key TTLs, so an expired session is
// literally absent and DeleteExpired has nothing to do.
type sessionRepository struct {
	client *goredis.Client
}

// NewSessionRepository is the constructor for the redis-backed session store.
func NewSessionRepository(client *goredis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

// sessionRecord is the stored JSON shape.
type sessionRecord struct {
	UserID    uint64         `json:"user_id"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Create stores the session under its key with the remaining TTL.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	record := sessionRecord{
		UserID:    session.UserID,
		Payload:   session.Payload,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to encode session record")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session expiry is in the past")
	}

	if err := repo.client.Set(ctx, keyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store session in redis")
	}

	return nil
}

// Find retrieves a live session; a missing key means absent or already
// evicted by TTL, which are the same thing to callers.
func (repo *sessionRepository) Find(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := repo.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to load session from redis")
	}

	var record sessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, errors.Wrap(err, "failed to decode session record")
	}

	return &entity.Session{
		ID:        id,
		UserID:    record.UserID,
		Payload:   record.Payload,
		CreatedAt: record.CreatedAt,
		ExpiresAt: record.ExpiresAt,
	}, nil
}

// Delete removes the session key, reporting ErrSessionNotFound when the
// key was already gone.
func (repo *sessionRepository) Delete(ctx context.Context, id string) error {
	removed, err := repo.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return errors.Wrap(err, "failed to delete session from redis")
	}
	if removed == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteExpired is a no-op: redis evicts expired keys itself.
func (repo *sessionRepository) DeleteExpired(_ context.Context) error {
	return nil
}
