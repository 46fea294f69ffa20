package acl

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/accesskeeper/internal/common"
	"github.com/dmitrijs2005/accesskeeper/internal/dbx"
	"github.com/dmitrijs2005/accesskeeper/internal/logging"
	"github.com/dmitrijs2005/accesskeeper/internal/roles"
	"github.com/dmitrijs2005/accesskeeper/internal/server/config"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
	grantsrepo "github.com/dmitrijs2005/accesskeeper/internal/server/repositories/grants"
	groupsrepo "github.com/dmitrijs2005/accesskeeper/internal/server/repositories/groups"
	membershipsrepo "github.com/dmitrijs2005/accesskeeper/internal/server/repositories/memberships"
	usersrepo "github.com/dmitrijs2005/accesskeeper/internal/server/repositories/users"
)

// --- in-memory repositories backing the service unit tests ---

type fakeUsersRepo struct {
	users map[string]*models.User
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	cp := *u
	f.users[u.Login] = &cp
	return nil
}

func (f *fakeUsersRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	u, ok := f.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	logins := make([]string, 0, len(f.users))
	for l := range f.users {
		logins = append(logins, l)
	}
	sort.Strings(logins)
	out := make([]*models.User, 0, len(logins))
	for _, l := range logins {
		cp := *f.users[l]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, login, name, email string) (bool, error) {
	u, ok := f.users[login]
	if !ok {
		return false, nil
	}
	u.Name, u.Email = name, email
	return true, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, login, hash string) (bool, error) {
	u, ok := f.users[login]
	if !ok {
		return false, nil
	}
	u.PasswordHash = hash
	return true, nil
}

type fakeGroupsRepo struct {
	groups map[string]*models.Group
}

func newFakeGroupsRepo() *fakeGroupsRepo {
	return &fakeGroupsRepo{groups: make(map[string]*models.Group)}
}

func (f *fakeGroupsRepo) Upsert(ctx context.Context, g *models.Group) error {
	cp := *g
	f.groups[g.Name] = &cp
	return nil
}

func (f *fakeGroupsRepo) GetByName(ctx context.Context, name string) (*models.Group, error) {
	g, ok := f.groups[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupsRepo) List(ctx context.Context) ([]*models.Group, error) {
	names := make([]string, 0, len(f.groups))
	for n := range f.groups {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*models.Group, 0, len(names))
	for _, n := range names {
		cp := *f.groups[n]
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeGroupsRepo) UpdateDescription(ctx context.Context, name, description string) (bool, error) {
	g, ok := f.groups[name]
	if !ok {
		return false, nil
	}
	g.Description = description
	return true, nil
}

type fakeGrantsRepo struct {
	// group -> role set
	grants map[string]map[string]struct{}
	// membership view used by RolesForUser; shared with fakeMembershipsRepo
	memberships *fakeMembershipsRepo
}

func newFakeGrantsRepo(m *fakeMembershipsRepo) *fakeGrantsRepo {
	return &fakeGrantsRepo{grants: make(map[string]map[string]struct{}), memberships: m}
}

func (f *fakeGrantsRepo) DeleteForGroup(ctx context.Context, group string) error {
	delete(f.grants, group)
	return nil
}

func (f *fakeGrantsRepo) Insert(ctx context.Context, group, role string) error {
	if f.grants[group] == nil {
		f.grants[group] = make(map[string]struct{})
	}
	f.grants[group][role] = struct{}{}
	return nil
}

func (f *fakeGrantsRepo) RolesForGroup(ctx context.Context, group string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for r := range f.grants[group] {
		out[r] = struct{}{}
	}
	return out, nil
}

func (f *fakeGrantsRepo) RolesForUser(ctx context.Context, login string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	for _, g := range f.memberships.edges[login] {
		for r := range f.grants[g] {
			out[r] = struct{}{}
		}
	}
	return out, nil
}

type fakeMembershipsRepo struct {
	// login -> group names
	edges  map[string][]string
	groups *fakeGroupsRepo
}

func newFakeMembershipsRepo(groups *fakeGroupsRepo) *fakeMembershipsRepo {
	return &fakeMembershipsRepo{edges: make(map[string][]string), groups: groups}
}

func (f *fakeMembershipsRepo) DeleteForUser(ctx context.Context, login string) error {
	delete(f.edges, login)
	return nil
}

func (f *fakeMembershipsRepo) Insert(ctx context.Context, login, group string) error {
	f.edges[login] = append(f.edges[login], group)
	return nil
}

func (f *fakeMembershipsRepo) GroupsForUser(ctx context.Context, login string) ([]*models.Group, error) {
	names := append([]string(nil), f.edges[login]...)
	sort.Strings(names)
	out := make([]*models.Group, 0, len(names))
	for _, n := range names {
		if g, ok := f.groups.groups[n]; ok {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	g *fakeGroupsRepo
	r *fakeGrantsRepo
	m *fakeMembershipsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	g := newFakeGroupsRepo()
	m := newFakeMembershipsRepo(g)
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		g: g,
		r: newFakeGrantsRepo(m),
		m: m,
	}
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (f *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return f.u }
func (f *fakeRepoManager) Groups(db dbx.DBTX) groupsrepo.Repository           { return f.g }
func (f *fakeRepoManager) Grants(db dbx.DBTX) grantsrepo.Repository           { return f.r }
func (f *fakeRepoManager) Memberships(db dbx.DBTX) membershipsrepo.Repository { return f.m }

// newTestService builds a Service over the fakes plus a sqlmock connection
// for the transaction wrapper.
func newTestService(t *testing.T) (*Service, *fakeRepoManager, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rm := newFakeRepoManager()
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour}
	svc := NewService(db, rm, roles.NewRegistry(), logging.NewJSON(testWriter{t}), cfg)
	return svc, rm, mock, db
}

func userWithHash(login, hash string) *models.User {
	return &models.User{Login: login, PasswordHash: hash}
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
