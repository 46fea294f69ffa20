package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/grants"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/groups"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// service layer can run a group of writes on a single transaction handle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Groups(db dbx.DBTX) groups.Repository
	Grants(db dbx.DBTX) grants.Repository
	Memberships(db dbx.DBTX) memberships.Repository
}
