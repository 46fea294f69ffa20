// Package identity models the caller of an inbound operation: either an
// authenticated user or the anonymous sentinel. The resolved identity is
// attached to the request context exactly once, at the transport boundary,
// and reused for the lifetime of that call.
package identity

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

// ErrNotResolved is returned by FromContext when no identity was attached to
// the context. It means the identity interceptor is not wired into the
// running process; treat it as a deployment fault, not a denial.
var ErrNotResolved = errors.New("identity not resolved: authorization subsystem is not wired")

// Identity is a tagged variant: the zero value is Anonymous, and
// Authenticated(u) wraps a resolved user.
type Identity struct {
	user *models.User
}

// Anonymous returns the sentinel identity for an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated wraps a resolved user. A nil user yields Anonymous.
func Authenticated(u *models.User) Identity {
	return Identity{user: u}
}

// IsAnonymous reports whether no user is attached.
func (id Identity) IsAnonymous() bool {
	return id.user == nil
}

// User returns the resolved user, or nil for Anonymous.
func (id Identity) User() *models.User {
	return id.user
}

// Login returns the resolved user's login, or "" for Anonymous.
func (id Identity) Login() string {
	if id.user == nil {
		return ""
	}
	return id.user.Login
}

type ctxKey struct{}

// NewContext returns a child context carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity resolved for this call. ErrNotResolved
// signals that resolution never happened for this context.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Identity{}, ErrNotResolved
	}
	return id, nil
}
