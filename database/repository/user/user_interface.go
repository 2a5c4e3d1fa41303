package userRepo

import (
	"context"

	"showdan/models"
)

// UserRepository reads accounts owned by the identity service.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
