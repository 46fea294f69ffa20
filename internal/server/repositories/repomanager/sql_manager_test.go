package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/grants"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/groups"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewSQLRepositoryManager("sqlite3")

	var _ users.Repository = m.Users(db)
	var _ groups.Repository = m.Groups(db)
	var _ grants.Repository = m.Grants(db)
	var _ memberships.Repository = m.Memberships(db)
}

func TestOpen_SelectsDialectFromDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/acl", "pgx"},
		{"postgresql://u:p@localhost:5432/acl", "pgx"},
		{"file::memory:?cache=shared", "sqlite3"},
		{"/var/lib/accesskeeper/acl.db", "sqlite3"},
	}

	for _, tt := range tests {
		db, m, err := Open(tt.dsn)
		if err != nil {
			t.Fatalf("Open(%q) error: %v", tt.dsn, err)
		}
		defer db.Close()

		sm, ok := m.(*SQLRepositoryManager)
		if !ok {
			t.Fatalf("Open(%q) returned %T", tt.dsn, m)
		}
		if sm.dialect != tt.want {
			t.Fatalf("Open(%q) dialect = %q, want %q", tt.dsn, sm.dialect, tt.want)
		}
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewSQLRepositoryManager("sqlite3")
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("migration failed")
	}
	defer func() { gooseUpContext = orig }()

	m := NewSQLRepositoryManager("sqlite3")
	if err := m.RunMigrations(context.Background(), db); err == nil {
		t.Fatal("expected error")
	}
}
