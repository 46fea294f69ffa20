package groups

import (
	"context"

	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, group *models.Group) error
	GetByName(ctx context.Context, name string) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	UpdateDescription(ctx context.Context, name, description string) (bool, error)
}
