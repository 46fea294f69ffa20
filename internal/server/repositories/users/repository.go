package users

import (
	"context"

	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, login, name, email string) (bool, error)
	UpdatePassword(ctx context.Context, login, passwordHash string) (bool, error)
}
