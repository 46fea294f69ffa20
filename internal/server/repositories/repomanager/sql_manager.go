// Package repomanager wires repository constructors to a relational store and
// runs schema migrations (via goose). The store is selected by DSN: anything
// starting with postgres:// or postgresql:// opens through the pgx stdlib
// driver, everything else is treated as a SQLite path or URI, which is also
// the out-of-the-box default (an in-memory database).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/server/migrations"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/grants"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/groups"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends SQL-backed repository implementations and
// exposes a schema migration hook. Dialect is the goose dialect matching the
// driver the database was opened with.
type SQLRepositoryManager struct {
	dialect string
}

func NewSQLRepositoryManager(dialect string) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

// Open connects to the store named by dsn and returns the connection together
// with a manager configured for the matching dialect.
func Open(dsn string) (*sql.DB, RepositoryManager, error) {
	driver, dialect := "sqlite3", "sqlite3"
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver, dialect = "pgx", "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if driver == "sqlite3" {
		// a single connection keeps the in-memory database alive and
		// serializes writers
		db.SetMaxOpenConns(1)
	}

	return db, NewSQLRepositoryManager(dialect), nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Groups returns a groups.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Groups(db dbx.DBTX) groups.Repository {
	return groups.NewSQLRepository(db)
}

// Grants returns a grants.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Grants(db dbx.DBTX) grants.Repository {
	return grants.NewSQLRepository(db)
}

// Memberships returns a memberships.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Memberships(db dbx.DBTX) memberships.Repository {
	return memberships.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection, creating the four ACL relations
// when absent.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(m.dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
