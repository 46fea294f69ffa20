package grpc

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/accesskeeper/internal/identity"
	"github.com/dmitrijs2005/accesskeeper/internal/logging"
	"github.com/dmitrijs2005/accesskeeper/internal/roles"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RoleSource is the slice of the ACL service the guard needs: effective
// roles and group membership for a resolved identity.
type RoleSource interface {
	GetUserRoles(ctx context.Context, id identity.Identity) (map[string]struct{}, error)
	GetUserGroups(ctx context.Context, login string) ([]*models.Group, error)
}

// Guard decides allow/deny per inbound call. Protected methods declare one
// or more acceptable roles (any one suffices); a whole service can carry a
// default role, and a method can additionally require membership in a named
// group. Declaring a requirement registers its role names, so the role
// registry always reflects every role the running configuration refers to.
//
// Denials are classified at this boundary: an anonymous caller gets
// Unauthenticated (challenge for credentials), an authenticated caller with
// insufficient roles gets PermissionDenied.
type Guard struct {
	source   RoleSource
	registry *roles.Registry
	bypass   bool
	logger   logging.Logger

	mu           sync.RWMutex
	methodRoles  map[string][]string
	serviceRoles map[string]string
	methodGroups map[string]string
}

// NewGuard builds a guard over source. bypass downgrades every denial to a
// permit; it exists for development and testing and must never ship
// enabled.
func NewGuard(source RoleSource, registry *roles.Registry, bypass bool, logger logging.Logger) *Guard {
	return &Guard{
		source:       source,
		registry:     registry,
		bypass:       bypass,
		logger:       logger.With("module", "guard"),
		methodRoles:  make(map[string][]string),
		serviceRoles: make(map[string]string),
		methodGroups: make(map[string]string),
	}
}

// Require declares that fullMethod (e.g. "/acl.Admin/ListUsers") needs any
// one of roleNames. The names are registered into the role registry.
func (g *Guard) Require(fullMethod string, roleNames ...string) *Guard {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, name := range roleNames {
		g.registry.Register(name)
	}
	g.methodRoles[fullMethod] = append(g.methodRoles[fullMethod], roleNames...)
	return g
}

// RequireService attaches a default required role to every method of a
// service (the service part of the full method name, without slashes).
func (g *Guard) RequireService(service, roleName string) *Guard {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Register(roleName)
	g.serviceRoles[service] = roleName
	return g
}

// RequireGroup declares that fullMethod needs membership in the named
// group, independent of any role requirement on the same method.
func (g *Guard) RequireGroup(fullMethod, group string) *Guard {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.methodGroups[fullMethod] = group
	return g
}

// Unary returns the interceptor enforcing the declared requirements. It
// must run after IdentityInterceptor; finding no identity on the context
// means the deployment is wired wrong and fails the call outright.
func (g *Guard) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		required, group := g.requirementsFor(info.FullMethod)
		if len(required) == 0 && group == "" {
			return handler(ctx, req)
		}

		id, err := identity.FromContext(ctx)
		if err != nil {
			g.logger.Error(ctx, "identity missing from context", "method", info.FullMethod)
			return nil, status.Error(codes.Internal, "authorization subsystem is not wired")
		}

		if g.bypass {
			g.logger.Warn(ctx, "role enforcement bypassed", "method", info.FullMethod)
			return handler(ctx, req)
		}

		if len(required) > 0 {
			ok, err := g.hasAnyRole(ctx, id, required)
			if err != nil {
				return nil, status.Error(codes.Internal, "role resolution failed")
			}
			if !ok {
				return nil, g.deny(ctx, id, info.FullMethod)
			}
		}

		if group != "" {
			ok, err := g.inGroup(ctx, id, group)
			if err != nil {
				return nil, status.Error(codes.Internal, "membership resolution failed")
			}
			if !ok {
				return nil, g.deny(ctx, id, info.FullMethod)
			}
		}

		return handler(ctx, req)
	}
}

func (g *Guard) requirementsFor(fullMethod string) ([]string, string) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	required := append([]string(nil), g.methodRoles[fullMethod]...)
	if service := serviceOf(fullMethod); service != "" {
		if role, ok := g.serviceRoles[service]; ok {
			required = append(required, role)
		}
	}
	return required, g.methodGroups[fullMethod]
}

func (g *Guard) hasAnyRole(ctx context.Context, id identity.Identity, required []string) (bool, error) {
	roleSet, err := g.source.GetUserRoles(ctx, id)
	if err != nil {
		g.logger.Error(ctx, "role resolution failed", "error", err.Error())
		return false, err
	}
	for _, name := range required {
		if _, ok := roleSet[name]; ok {
			return true, nil
		}
	}
	return false, nil
}

func (g *Guard) inGroup(ctx context.Context, id identity.Identity, group string) (bool, error) {
	if id.IsAnonymous() {
		return false, nil
	}
	groups, err := g.source.GetUserGroups(ctx, id.Login())
	if err != nil {
		g.logger.Error(ctx, "membership resolution failed", "error", err.Error())
		return false, err
	}
	for _, grp := range groups {
		if grp.Name == group {
			return true, nil
		}
	}
	return false, nil
}

func (g *Guard) deny(ctx context.Context, id identity.Identity, method string) error {
	if id.IsAnonymous() {
		g.logger.Debug(ctx, "denied anonymous caller", "method", method)
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	g.logger.Debug(ctx, "denied caller", "method", method, "login", id.Login())
	return status.Error(codes.PermissionDenied, "forbidden")
}

// serviceOf extracts "acl.Admin" from "/acl.Admin/ListUsers".
func serviceOf(fullMethod string) string {
	trimmed := strings.TrimPrefix(fullMethod, "/")
	if i := strings.Index(trimmed, "/"); i > 0 {
		return trimmed[:i]
	}
	return ""
}
