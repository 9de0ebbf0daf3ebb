package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/legalchicks/lcen-portal/internal/client/client"
	"github.com/legalchicks/lcen-portal/internal/client/config"
	"github.com/legalchicks/lcen-portal/internal/client/notifications"
	"github.com/legalchicks/lcen-portal/internal/client/repositories/metadata"
	"github.com/legalchicks/lcen-portal/internal/client/router"
	"github.com/legalchicks/lcen-portal/internal/client/session"
	"github.com/legalchicks/lcen-portal/internal/client/settings"
	"github.com/legalchicks/lcen-portal/internal/filex"
	"github.com/legalchicks/lcen-portal/internal/logging"
)

const (
	appDirName    = "lcen-portal"
	stateFileName = "state.db"
)

// App is the portal client: session, router and services behind a REPL.
type App struct {
	config        *config.Config
	api           client.Client
	session       *session.Manager
	router        *router.Router
	settings      *settings.Service
	notifications *notifications.Service
	logger        logging.Logger

	reader *bufio.Reader
	out    io.Writer
	db     *sql.DB
}

// NewApp opens the state database and wires the client for c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stderr, c.LogLevel)

	dsn := c.StateDSN
	if dsn == "" {
		p, err := filex.StatePath(appDirName, stateFileName)
		if err != nil {
			return nil, fmt.Errorf("resolve state path: %w", err)
		}
		dsn = p
	}

	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	store := metadata.NewSQLiteRepository(db)

	api, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, session.StoredToken(store))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := assemble(c, api, store, logger, os.Stdin, os.Stdout)
	a.db = db
	return a, nil
}

// assemble builds the App around already constructed collaborators.
func assemble(c *config.Config, api client.Client, store metadata.Repository, logger logging.Logger, in io.Reader, out io.Writer) *App {
	sm := session.NewManager(api, store, nil, logger, session.Options{
		VerifyTimeout:            c.VerifyTimeout,
		ClearPreferencesOnLogout: c.ClearPreferencesOnLogout,
	})
	rt := router.New(sm, router.DefaultRoutes())
	sm.SetNavigator(rt)

	return &App{
		config:        c,
		api:           api,
		session:       sm,
		router:        rt,
		settings:      settings.NewService(store, logger),
		notifications: notifications.NewService(store, logger),
		logger:        logger.With("module", "cli"),
		reader:        bufio.NewReader(in),
		out:           out,
	}
}

// start loads local state, checks the server, restores the session and
// lands on the root route.
func (a *App) start(ctx context.Context) {
	a.settings.Load(ctx)
	a.notifications.Load(ctx)

	if err := a.api.Health(ctx); err != nil {
		a.logger.Warn(ctx, "health check", "error", err)
		fmt.Fprintf(a.out, "The LCEN server at %s is unreachable. Commands will fail until it is back.\n", a.config.ServerBaseURL)
	}

	if err := a.session.Bootstrap(ctx); err != nil {
		a.logger.Error(ctx, "restore session", "error", err)
	}
	if a.session.State() == session.Unauthenticated && a.router.Current() == session.PathLogin {
		fmt.Fprintln(a.out, "Your saved session is no longer valid. Please sign in again.")
	}
	if err := a.router.Navigate("/"); err != nil {
		a.logger.Error(ctx, "initial navigation", "error", err)
	}
}

// Run restores the session, runs the REPL until exit and closes the state
// database.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Welcome to the LCEN member portal (type 'help' for commands)")
	a.start(ctx)
	a.renderCurrent(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := a.router.Current()
	if u := a.session.CurrentUser(); u != nil {
		s = u.Email + " " + s
	}
	return s
}
