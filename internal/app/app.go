// Package app wires configuration, storage, services and the interactive
// shell together and runs them until the user exits or a signal arrives.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trackly/internal/avatar"
	"github.com/dmitrijs2005/trackly/internal/cli"
	"github.com/dmitrijs2005/trackly/internal/config"
	"github.com/dmitrijs2005/trackly/internal/dbx"
	"github.com/dmitrijs2005/trackly/internal/identity"
	"github.com/dmitrijs2005/trackly/internal/logging"
	"github.com/dmitrijs2005/trackly/internal/repositories/repomanager"
	"github.com/dmitrijs2005/trackly/internal/services"
	"github.com/dmitrijs2005/trackly/internal/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *dbx.Store

	authService    *services.AuthService
	projectService *services.ProjectService
	sessionService *services.SessionService
	statsService   *services.StatsService

	in  io.Reader
	out io.Writer
}

// NewApp opens the database and builds the services. Logs go to logOut,
// the shell talks over in and out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	store, err := storage.Open(ctx, c.DatabasePath, c.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	avatars, err := avatar.NewStore(c)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("avatar store init error: %w", err)
	}

	rm := repomanager.NewSQLiteRepositoryManager()
	cache := identity.NewCache()

	return &App{
		config:         c,
		logger:         logger,
		store:          store,
		authService:    services.NewAuthService(store, rm, cache, avatars, c, logger),
		projectService: services.NewProjectService(store, rm, cache, logger),
		sessionService: services.NewSessionService(store, rm, cache, logger),
		statsService:   services.NewStatsService(store, rm, cache),
		in:             in,
		out:            out,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run restores the remembered login, then serves the shell. The store is
// closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "close store", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "db", app.config.DatabasePath)

	// A broken mirror must not keep the user out; they can log in again.
	if err := app.authService.Restore(ctx); err != nil {
		app.logger.Warn(ctx, "restore login failed", "error", err)
	}

	shell := cli.NewApp(app.authService, app.projectService, app.sessionService, app.statsService, app.in, app.out)
	shell.Run(ctx)

	app.logger.Info(ctx, "App stopped")
	return nil
}

// Migrate brings the schema at c.DatabasePath up to date and exits.
func Migrate(ctx context.Context, c *config.Config, logOut io.Writer) error {
	logger := logging.NewJSONLogger(logOut, c.LogLevel)

	store, err := storage.Open(ctx, c.DatabasePath, c.BusyTimeout)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info(ctx, "schema is up to date", "db", c.DatabasePath)
	return store.Close()
}
