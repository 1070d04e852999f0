package users

import (
	"context"

	"github.com/commently/commently/internal/server/models"
)

// Repository is the persistence contract for identity records. The store,
// not the service, is the authority on email uniqueness: Create returns
// common.ErrorAlreadyExists when the unique index rejects a duplicate.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
