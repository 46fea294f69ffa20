package acl

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/identity"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

// SetUserGroups replaces a user's group memberships with groupNames. Names
// that do not match an existing group are dropped silently; duplicates
// collapse. Delete and inserts run in one transaction.
func (s *Service) SetUserGroups(ctx context.Context, login string, groupNames []string) error {
	existing, err := s.repos.Groups(s.db).List(ctx)
	if err != nil {
		return fmt.Errorf("error listing groups: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, g := range existing {
		known[g.Name] = struct{}{}
	}

	keep := make(map[string]struct{}, len(groupNames))
	for _, name := range groupNames {
		if _, ok := known[name]; ok {
			keep[name] = struct{}{}
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Memberships(tx)
		if err := repo.DeleteForUser(ctx, login); err != nil {
			return err
		}
		for name := range keep {
			if err := repo.Insert(ctx, login, name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error replacing user groups: %w", err)
	}

	return nil
}

// GetUserGroups returns the groups login belongs to, ordered by name.
func (s *Service) GetUserGroups(ctx context.Context, login string) ([]*models.Group, error) {
	return s.repos.Memberships(s.db).GroupsForUser(ctx, login)
}

// GetUserRoles computes the caller's effective roles: the union of every
// grant of every group the user belongs to. Anonymous always yields the
// empty set. Recomputed from the store on every call so group and grant
// edits take effect immediately.
func (s *Service) GetUserRoles(ctx context.Context, id identity.Identity) (map[string]struct{}, error) {
	if id.IsAnonymous() {
		return map[string]struct{}{}, nil
	}
	return s.repos.Grants(s.db).RolesForUser(ctx, id.Login())
}

// CurrentUserRoles returns the effective roles of the identity resolved for
// this call. identity.ErrNotResolved comes back when the identity
// interceptor is not wired into the process.
func (s *Service) CurrentUserRoles(ctx context.Context) (map[string]struct{}, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetUserRoles(ctx, id)
}

// CurrentUserGroupNames returns the group names of the identity resolved for
// this call; empty for Anonymous.
func (s *Service) CurrentUserGroupNames(ctx context.Context) ([]string, error) {
	id, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if id.IsAnonymous() {
		return []string{}, nil
	}

	groups, err := s.GetUserGroups(ctx, id.Login())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names, nil
}
