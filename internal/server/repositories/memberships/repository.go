package memberships

import (
	"context"

	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

type Repository interface {
	DeleteForUser(ctx context.Context, login string) error
	Insert(ctx context.Context, login, group string) error
	GroupsForUser(ctx context.Context, login string) ([]*models.Group, error)
}
