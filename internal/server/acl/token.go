package acl

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/accesskeeper/internal/common"
	"github.com/dmitrijs2005/accesskeeper/internal/identity"
	"github.com/dmitrijs2005/accesskeeper/internal/server/auth"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

// IssueAccessToken signs an access token for an authenticated user. The
// transport layer hands the token back on later calls; only the login
// travels inside it.
func (s *Service) IssueAccessToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.Login, s.jwtSecret, s.tokenValidity)
}

// UserFromAccessToken resolves an access token back to an identity. Any
// failure (empty, malformed, expired or forged token, or a login that no
// longer exists) yields Anonymous, never an error.
func (s *Service) UserFromAccessToken(ctx context.Context, token string) identity.Identity {
	if token == "" {
		return identity.Anonymous()
	}

	login, err := auth.LoginFromToken(token, s.jwtSecret)
	if err != nil {
		return identity.Anonymous()
	}

	user, err := s.repos.Users(s.db).GetByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "token resolution lookup failed", "error", err.Error())
		}
		return identity.Anonymous()
	}

	return identity.Authenticated(user)
}
