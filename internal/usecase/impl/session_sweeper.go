package impl

import (
	"context"
	"log/slog"
	"time"

	"doorman/config"
	"doorman/internal/domain/repository"

	"go.uber.org/fx"
)

// sessionSweeper periodically deletes expired sessions from the store.
// Lookups already treat expired sessions as absent, so the sweep is only
// about reclaiming storage, not correctness.
type sessionSweeper struct {
	sessionRepo repository.SessionRepository
	interval    time.Duration
	logger      *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// SessionSweeperParams holds dependencies for the sweeper, injected by Fx.
type SessionSweeperParams struct {
	fx.In

	LC          fx.Lifecycle
	SessionRepo repository.SessionRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// RegisterSessionSweeper starts the background sweep loop on application
// start and stops it on shutdown.
func RegisterSessionSweeper(params SessionSweeperParams) {
	sweeper := &sessionSweeper{
		sessionRepo: params.SessionRepo,
		interval:    params.Config.Session.SweepInterval,
		logger:      params.Logger,
		done:        make(chan struct{}),
	}

	params.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			sweeper.cancel = cancel
			go sweeper.run(ctx)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.cancel()
			select {
			case <-sweeper.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func (s *sessionSweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.sessionRepo.DeleteExpired(ctx); err != nil {
				s.logger.Error("Failed to sweep expired sessions", slog.Any("error", err))
			}
		}
	}
}
