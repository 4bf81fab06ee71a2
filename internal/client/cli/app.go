package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/schooldesk/internal/client/api"
	"github.com/dmitrijs2005/schooldesk/internal/client/config"
	"github.com/dmitrijs2005/schooldesk/internal/client/provider"
	"github.com/dmitrijs2005/schooldesk/internal/client/router"
	"github.com/dmitrijs2005/schooldesk/internal/client/session"
	"github.com/dmitrijs2005/schooldesk/internal/client/storage"
	"github.com/dmitrijs2005/schooldesk/internal/client/tokenstore"
	"github.com/dmitrijs2005/schooldesk/internal/filex"
	"github.com/dmitrijs2005/schooldesk/internal/logging"
)

// Getter is the read side of the REST client.
type Getter interface {
	Get(ctx context.Context, endpoint string, params map[string]any, out any) error
}

type App struct {
	config  *config.Config
	session session.Service
	router  *router.Router
	api     Getter
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	closers []func() error
}

// NewApp builds the client for cfg.AuthMode. The REST client, the session
// service and the router refer to each other through closures, so the
// fault handler can end the session and move the location.
func NewApp(ctx context.Context, c *config.Config, l logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	a := &App{config: c, logger: l.With("module", "cli"), reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	var sess session.Service
	var rt *router.Router

	faults := api.NewFaultHandler(
		func(ctx context.Context) { sess.Logout(ctx) },
		func(path string) { rt.Redirect(path) },
		l,
	)
	client := api.NewClient(c.APIBaseURL, c.RequestTimeout, nil,
		func(ctx context.Context) (string, bool) { return sess.Credential(ctx) },
		faults, l)

	switch c.AuthMode {
	case config.AuthModeProvider:
		idp, err := provider.Dial(c.ProviderAddr)
		if err != nil {
			return nil, fmt.Errorf("identity provider: %w", err)
		}
		a.closers = append(a.closers, idp.Close)
		sess = session.NewProviderService(idp, l)
	default:
		path, err := filex.EnsureParentDir(c.StorePath)
		if err != nil {
			return nil, fmt.Errorf("error preparing session store: %w", err)
		}
		db, err := storage.InitDatabase(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("error initializing session store: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		sess = session.NewTokenService(ctx, client, tokenstore.New(db, l), l)
	}

	rt = router.New(router.DefaultRoutes(router.NewAuthGate(sess), router.NewRoleGate(sess)), l)

	a.session = sess
	a.router = rt
	a.api = client
	return a, nil
}

// Run starts the session watcher and the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watched := make(chan struct{})
	go func() {
		defer close(watched)
		watchSession(a.session.Subscribe(ctx))
	}()

	printlnFn("Welcome to SchoolDesk (type 'help' for commands)")
	a.router.Navigate(ctx, "/")

	runREPL(ctx, a, a.getStatus, a.reader)

	cancel()
	<-watched
}

// Close releases the session store or the provider connection.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.session.CurrentUser() != nil
}

func (a *App) getStatus() string {
	s := a.router.Location()
	if p := a.session.CurrentUser(); p != nil {
		s = fmt.Sprintf("%s (%s %s)", s, p.Email, p.EffectiveRole())
	}
	return s
}
