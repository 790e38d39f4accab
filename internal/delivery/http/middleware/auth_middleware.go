// Package middleware contains the HTTP middleware for the application.
package middleware

import (
	"doorman/internal/delivery/http/cookie"
	"doorman/internal/domain/entity"
	domainerrors "doorman/internal/domain/errors"
	"doorman/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Context keys for the authenticated identity, set by Restricted.
const (
	KeySessionID = "sessionID"
	KeyUserID    = "userID"
	KeyUsername  = "username"
)

// AuthMiddleware guards routes that require a live session.
type AuthMiddleware struct {
	sessionSrv usecase.SessionUsecase
	cookies    *cookie.Manager
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	SessionSrv usecase.SessionUsecase
	Cookies    *cookie.Manager
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		sessionSrv: params.SessionSrv,
		cookies:    params.Cookies,
	}
}

// Restricted rejects any request without a verifiable session. Missing
// cookie, bad signature, unknown id and expired session all get the same
// answer, so a caller learns nothing about which check failed.
func (m *AuthMiddleware) Restricted(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionID, err := m.cookies.Read(c)
		if err != nil {
			return domainerrors.ErrNotAuthenticated
		}

		session, err := m.sessionSrv.Load(c.Request().Context(), sessionID)
		if err != nil {
			return domainerrors.ErrNotAuthenticated
		}

		c.Set(KeySessionID, session.ID)
		c.Set(KeyUserID, session.UserID)
		if username, ok := session.Payload[entity.SessionKeyUsername].(string); ok {
			c.Set(KeyUsername, username)
		}

		return next(c)
	}
}
