// Package response defines the JSON shapes the API answers with.
package response

import (
	"doorman/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// MessageBody is the envelope for plain-message responses.
type MessageBody struct {
	Message string `json:"message"`
}

// UserBody is the public view of an account. The password hash never
// leaves the server.
type UserBody struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// Message writes a {"message": ...} body with the given status code.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageBody{Message: message})
}

// User writes a single account with the given status code.
func User(c echo.Context, statusCode int, user *entity.User) error {
	return c.JSON(statusCode, NewUserBody(user))
}

// Users writes a list of accounts. An empty list renders as [] rather
// than null.
func Users(c echo.Context, statusCode int, users []*entity.User) error {
	body := make([]UserBody, 0, len(users))
	for _, user := range users {
		body = append(body, NewUserBody(user))
	}

	return c.JSON(statusCode, body)
}

// NewUserBody maps a domain user to its public view.
func NewUserBody(user *entity.User) UserBody {
	return UserBody{
		UserID:   user.ID,
		Username: user.Username,
	}
}
