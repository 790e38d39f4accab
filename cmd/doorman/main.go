package main

import (
	"context"
	"log/slog"
	"os"

	"doorman/config"
	"doorman/internal/delivery"
	"doorman/internal/delivery/http"
	"doorman/internal/delivery/http/cookie"
	"doorman/internal/delivery/http/middleware"
	"doorman/internal/delivery/http/router/handler"
	"doorman/internal/domain/repository"
	"doorman/internal/domain/service"
	"doorman/internal/infra/auth"
	logs "doorman/internal/infra/log"
	"doorman/internal/infra/persistence/memory"
	"doorman/internal/infra/persistence/postgres"
	redisinfra "doorman/internal/infra/persistence/redis"
	"doorman/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			impl.RegisterSessionSweeper,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			newSessionRepository,
		),
	)
}

// newSessionRepository selects the session store backend from config.
// Accounts always live in postgres; only sessions move between backends.
func newSessionRepository(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger, db *gorm.DB) (repository.SessionRepository, error) {
	switch cfg.Session.Store {
	case "postgres":
		return postgres.NewSessionRepository(db), nil
	case "redis":
		client, err := redisinfra.New(redisinfra.Params{
			Lifecycle: lc,
			Config:    cfg,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return redisinfra.NewSessionRepository(client), nil
	case "memory":
		return memory.NewSessionRepository(), nil
	default:
		return nil, errors.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			cookie.NewManager,
		),
	)
}

func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth == nil {
		return auth.NewBcryptHasher()
	}

	return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewAuthService,
			impl.NewUserService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
