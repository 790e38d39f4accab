package handler

import (
	"net/http"

	"doorman/internal/delivery/http/response"
	"doorman/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandler holds dependencies for the user endpoints.
type UserHandler struct {
	userSrv usecase.UserUsecase
}

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserSrv usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userSrv: params.UserSrv,
	}
}

// ListUsers returns every registered account.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userSrv.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Users(c, http.StatusOK, users)
}
