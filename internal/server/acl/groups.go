package acl

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

// AddGroup creates a group, or overwrites its description when the name
// already exists. Idempotent by name.
func (s *Service) AddGroup(ctx context.Context, name, description string) error {
	return s.repos.Groups(s.db).Upsert(ctx, &models.Group{Name: name, Description: description})
}

// GetGroup looks a group up by name; common.ErrorNotFound when absent.
func (s *Service) GetGroup(ctx context.Context, name string) (*models.Group, error) {
	return s.repos.Groups(s.db).GetByName(ctx, name)
}

// ListGroups returns every group ordered by name.
func (s *Service) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.repos.Groups(s.db).List(ctx)
}

// EditGroup updates a group's description. Returns false when the group does
// not exist.
func (s *Service) EditGroup(ctx context.Context, name, description string) (bool, error) {
	return s.repos.Groups(s.db).UpdateDescription(ctx, name, description)
}

// SetGroupRoles replaces a group's role grants with roleNames. Names never
// registered in the role registry are dropped silently, as are duplicates.
// The delete and inserts run in one transaction so readers never observe a
// partially replaced grant set.
func (s *Service) SetGroupRoles(ctx context.Context, group string, roleNames []string) error {
	keep := make(map[string]struct{}, len(roleNames))
	for _, name := range roleNames {
		if s.roles.Has(name) {
			keep[name] = struct{}{}
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Grants(tx)
		if err := repo.DeleteForGroup(ctx, group); err != nil {
			return err
		}
		for name := range keep {
			if err := repo.Insert(ctx, group, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error replacing group roles: %w", err)
	}

	return nil
}

// GetGroupRoles returns the set of role names currently granted to group.
func (s *Service) GetGroupRoles(ctx context.Context, group string) (map[string]struct{}, error) {
	return s.repos.Grants(s.db).RolesForGroup(ctx, group)
}
