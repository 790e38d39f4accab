// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"doorman/config"
	deliverycontext "doorman/internal/delivery/context"
	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"
	"doorman/internal/errors"
	"doorman/internal/infra/auth"
	"doorman/internal/usecase"

	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface on top of the
// configured session store. Expiry policy is an absolute TTL stamped at
// creation; there is no sliding idle window.
type sessionService struct {
	sessionRepo repository.SessionRepository
	ttl         time.Duration
	logger      *slog.Logger
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo repository.SessionRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo: params.SessionRepo,
		ttl:         params.Config.Session.TTL,
		logger:      params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create generates an unguessable id and persists the session with its
// absolute expiry.
func (srv *sessionService) Create(ctx context.Context, userID uint64, payload map[string]any) (string, error) {
	sessionID, err := auth.NewSessionID()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate session id")
	}

	now := time.Now()
	session := &entity.Session{
		ID:        sessionID,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(srv.ttl),
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to persist session")
	}

	srv.log(ctx).Debug("Session created", slog.Uint64("userID", userID))

	return sessionID, nil
}

// Load resolves a session id. The store already folds expired into absent.
func (srv *sessionService) Load(ctx context.Context, sessionID string) (*entity.Session, error) {
	if sessionID == "" {
		return nil, repository.ErrSessionNotFound
	}

	session, err := srv.sessionRepo.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to load session")
	}

	return session, nil
}

// Destroy removes the session. A missing session reports existed=false
// with no error: logging out twice is not exceptional.
func (srv *sessionService) Destroy(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}

	if err := srv.sessionRepo.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to destroy session")
	}

	srv.log(ctx).Debug("Session destroyed")

	return true, nil
}
