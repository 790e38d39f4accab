// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"doorman/internal/domain/entity"
)

// UserUsecase defines the interface for user-query operations.
type UserUsecase interface {
	// ListUsers returns every registered user. Callers must expose only
	// the public identity fields.
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
