package grants

import "context"

type Repository interface {
	DeleteForGroup(ctx context.Context, group string) error
	Insert(ctx context.Context, group, role string) error
	RolesForGroup(ctx context.Context, group string) (map[string]struct{}, error)
	RolesForUser(ctx context.Context, login string) (map[string]struct{}, error)
}
