// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"doorman/internal/delivery/http/cookie"
	"doorman/internal/delivery/http/response"
	domainerrors "doorman/internal/domain/errors"
	"doorman/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// registerRequest is the registration body. Username presence is a body
// shape concern; the password is never checked here because its length
// rule belongs to the registration flow and must answer 422 even for an
// empty value.
type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
}

// loginRequest carries no validation tags on purpose: an empty username
// or password must fall through to the credential check and fail with the
// same generic rejection as any other wrong credential.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	authSrv usecase.AuthUsecase
	cookies *cookie.Manager
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthSrv usecase.AuthUsecase
	Cookies *cookie.Manager
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authSrv: params.AuthSrv,
		cookies: params.Cookies,
	}
}

// Register handles the account creation request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidRequestBody
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidRequestBody
	}

	output, err := h.authSrv.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.User(c, http.StatusCreated, output.User)
}

// Login verifies credentials and, only on success, issues the session
// cookie alongside the welcome message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidRequestBody
	}

	output, err := h.authSrv.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.cookies.Issue(c, output.SessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, http.StatusOK, output.Message)
}

// Logout tears down the session, if any, and tells the browser to drop
// the cookie either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, err := h.cookies.Read(c)
	if err != nil {
		sessionID = ""
	}

	// The browser cookie is dropped no matter what happens server-side;
	// a store failure must not leave a dangling cookie behind.
	h.cookies.Clear(c)

	status, err := h.authSrv.Logout(c.Request().Context(), sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	switch status {
	case usecase.LogoutStatusLoggedOut:
		return response.Message(c, http.StatusOK, "logged out")
	default:
		return response.Message(c, http.StatusOK, "no session")
	}
}
