// Package acl is the core of accesskeeper: user credentials, groups, the
// role registry, user-group membership, and the derivation of a user's
// effective roles. Expected user-input failures (duplicate login, short
// password, unknown entity) are reported as boolean results; errors are
// reserved for the persistence layer misbehaving.
package acl

import (
	"database/sql"
	"time"

	"github.com/dmitrijs2005/accesskeeper/internal/logging"
	"github.com/dmitrijs2005/accesskeeper/internal/roles"
	"github.com/dmitrijs2005/accesskeeper/internal/server/config"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/repomanager"
)

type Service struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	roles         *roles.Registry
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewService(db *sql.DB, rm repomanager.RepositoryManager, registry *roles.Registry, logger logging.Logger, cfg *config.Config) *Service {
	return &Service{
		db:            db,
		repos:         rm,
		roles:         registry,
		logger:        logger.With("module", "acl"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
	}
}

// Roles exposes the role registry this service validates grants against.
func (s *Service) Roles() *roles.Registry {
	return s.roles
}
