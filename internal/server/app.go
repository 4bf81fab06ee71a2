// Package server initializes and runs the development backend: the REST API
// and the identity provider, both backed by one user service.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/schooldesk/internal/logging"
	"github.com/dmitrijs2005/schooldesk/internal/server/auth"
	"github.com/dmitrijs2005/schooldesk/internal/server/config"
	"github.com/dmitrijs2005/schooldesk/internal/server/httpapi"
	"github.com/dmitrijs2005/schooldesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/schooldesk/internal/server/services"

	gs "github.com/dmitrijs2005/schooldesk/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
}

func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rm, db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidityDuration)
	us := services.NewUserService(db, rm, issuer, l)

	if c.SeedAdminEmail != "" {
		if err := us.SeedAdmin(ctx, c.SeedAdminEmail, c.SeedAdminPassword); err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("seed admin: %w", err)
		}
	}

	if db == nil {
		l.Warn(ctx, "no database configured, accounts are kept in memory")
	}

	return &App{config: c, logger: l, db: db, userService: us}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.userService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewEchoServer(app.userService, app.logger)

	if err := s.Run(ctx, app.config.HTTPAddr); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives, ctx is cancelled or a listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}
	app.logger.Info(ctx, "App stopped")
}
