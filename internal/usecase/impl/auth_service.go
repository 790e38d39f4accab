package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "doorman/internal/delivery/context"
	"doorman/internal/domain/entity"
	domainerrors "doorman/internal/domain/errors"
	"doorman/internal/domain/repository"
	"doorman/internal/domain/service"
	"doorman/internal/errors"
	"doorman/internal/usecase"

	"go.uber.org/fx"
)

// minPasswordLength is exclusive: a password must be strictly longer.
const minPasswordLength = 3

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo   repository.UserRepository
	sessionSrv usecase.SessionUsecase
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	SessionSrv usecase.SessionUsecase
	Hasher     service.PasswordHasher
	Logger     *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:   params.UserRepo,
		sessionSrv: params.SessionSrv,
		hasher:     params.Hasher,
		logger:     params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The password length check runs first:
// a too-short password is rejected the same way whether or not the
// username is taken. The username pre-check is a fast path for a friendly
// error; the database unique constraint is what actually closes the race
// between concurrent registrations.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if len(input.Password) <= minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort
	}

	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err == nil {
		return nil, domainerrors.ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check username availability")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, domainerrors.ErrUsernameTaken
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered",
		slog.Uint64("userID", user.ID),
		slog.String("username", user.Username))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords produce the same error so the response cannot be used
// to probe which usernames exist.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		// A corrupt stored hash is an operational problem, not the
		// caller's. Log the cause and answer with the same 401 as a
		// plain mismatch.
		srv.log(ctx).Error("Stored credential could not be verified",
			slog.Uint64("userID", user.ID),
			slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !ok {
		return nil, domainerrors.ErrInvalidCredentials
	}

	sessionID, err := srv.sessionSrv.Create(ctx, user.ID, map[string]any{
		entity.SessionKeyUserID:   user.ID,
		entity.SessionKeyUsername: user.Username,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	srv.log(ctx).Info("User logged in", slog.Uint64("userID", user.ID))

	return &usecase.LoginOutput{
		SessionID: sessionID,
		Message:   fmt.Sprintf("Welcome %s!", user.Username),
		User:      user,
	}, nil
}

// Logout tears down the session if one exists.
func (srv *authService) Logout(ctx context.Context, sessionID string) (usecase.LogoutStatus, error) {
	existed, err := srv.sessionSrv.Destroy(ctx, sessionID)
	if err != nil {
		return usecase.LogoutStatusNoSession, errors.Wrap(err, "failed to destroy session")
	}

	if !existed {
		return usecase.LogoutStatusNoSession, nil
	}

	srv.log(ctx).Info("User logged out")

	return usecase.LogoutStatusLoggedOut, nil
}
