package acl

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/common"
)

const (
	// AdminRole is the role granted to the bootstrap group.
	AdminRole = "admin"

	adminGroup            = "admin"
	adminGroupDescription = "Administrator group"
)

// EnsureAdmin wires an initial administrator: if login is new it registers
// the user, upserts the admin group, grants it the admin role and assigns
// the user to it. When the login already exists the call is a no-op and
// never re-grants or re-assigns, so it is safe on every startup.
func (s *Service) EnsureAdmin(ctx context.Context, login, password string) error {
	_, err := s.GetUser(ctx, login)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("error checking admin login: %w", err)
	}

	ok, err := s.Register(ctx, login, password, "", "")
	if err != nil {
		return fmt.Errorf("error registering admin: %w", err)
	}
	if !ok {
		return fmt.Errorf("admin credentials rejected: login %q", login)
	}

	s.roles.Register(AdminRole)

	if err := s.AddGroup(ctx, adminGroup, adminGroupDescription); err != nil {
		return fmt.Errorf("error creating admin group: %w", err)
	}

	grants, err := s.GetGroupRoles(ctx, adminGroup)
	if err != nil {
		return fmt.Errorf("error reading admin group roles: %w", err)
	}
	names := make([]string, 0, len(grants)+1)
	for name := range grants {
		names = append(names, name)
	}
	names = append(names, AdminRole)
	if err := s.SetGroupRoles(ctx, adminGroup, names); err != nil {
		return fmt.Errorf("error granting admin role: %w", err)
	}

	if err := s.SetUserGroups(ctx, login, []string{adminGroup}); err != nil {
		return fmt.Errorf("error assigning admin membership: %w", err)
	}

	return nil
}
