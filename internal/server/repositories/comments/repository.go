package comments

import (
	"context"

	"github.com/commently/commently/internal/server/models"
)

// Repository is the persistence contract for comments.
type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByCpaID(ctx context.Context, cpaID string) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}
