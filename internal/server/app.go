// Package server initializes and runs the accesskeeper server. It opens the
// backing store, applies migrations, bootstraps the admin account when
// configured, and starts the gRPC endpoint with identity resolution and the
// authorization guard on the interceptor chain.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/accesskeeper/internal/logging"
	"github.com/dmitrijs2005/accesskeeper/internal/roles"
	"github.com/dmitrijs2005/accesskeeper/internal/server/acl"
	"github.com/dmitrijs2005/accesskeeper/internal/server/config"
	"github.com/dmitrijs2005/accesskeeper/internal/server/repositories/repomanager"

	gs "github.com/dmitrijs2005/accesskeeper/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	acl      *acl.Service
	guard    *gs.Guard
	register func(registrar gs.ServiceRegistrar)
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	db, rm, err := repomanager.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	registry := roles.NewRegistry()
	service := acl.NewService(db, rm, registry, logger, cfg)
	guard := gs.NewGuard(service, registry, cfg.DisableRoleEnforcement, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		repos:  rm,
		acl:    service,
		guard:  guard,
	}, nil
}

// ACL exposes the service so embedders can manage users, groups and grants
// directly, e.g. from an admin endpoint.
func (app *App) ACL() *acl.Service {
	return app.acl
}

// Guard exposes the authorization guard for declaring per-method role and
// group requirements before Run.
func (app *App) Guard() *gs.Guard {
	return app.guard
}

// RegisterServices installs the callback that attaches concrete gRPC
// services to the server before it starts listening.
func (app *App) RegisterServices(fn func(registrar gs.ServiceRegistrar)) {
	app.register = fn
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewServer(app.config.EndpointAddrGRPC, app.logger, app.register,
		gs.IdentityInterceptor(app.acl), app.guard.Unary())

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if app.config.AdminLogin != "" {
		if err := app.acl.EnsureAdmin(ctx, app.config.AdminLogin, app.config.AdminPassword); err != nil {
			return fmt.Errorf("admin bootstrap error: %w", err)
		}
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return nil
}
