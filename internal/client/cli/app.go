package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/countryexplorer/internal/client/client"
	"github.com/dmitrijs2005/countryexplorer/internal/client/config"
	"github.com/dmitrijs2005/countryexplorer/internal/client/credentials"
	"github.com/dmitrijs2005/countryexplorer/internal/client/services"
	"github.com/dmitrijs2005/countryexplorer/internal/filex"
	"github.com/dmitrijs2005/countryexplorer/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	logger  logging.Logger
	session services.SessionService
	catalog services.CatalogService
	reader  *bufio.Reader
}

// NewApp opens the registry named in c and builds the services on top of it.
// Logs go to stderr so they do not mix with REPL output.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New(c.LogBackend, c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	verifier, err := credentials.ByName(c.CredentialScheme)
	if err != nil {
		return nil, err
	}

	if isFilePath(c.DatabasePath) {
		if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
			return nil, err
		}
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	catalog := client.NewHTTPCatalog(c.CatalogBaseURL, logger,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond),
	)

	return &App{
		config:  c,
		db:      db,
		logger:  logger,
		session: services.NewSessionService(db, verifier, logger),
		catalog: services.NewCatalogService(catalog, logger),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// isFilePath reports whether dsn names a plain file rather than a SQLite URI
// or an in-memory database.
func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Run restores the previous session in the background and serves the REPL
// until the user exits. The registry is closed on return.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "closing registry", "error", err)
		}
	}()

	done := a.session.StartRestore(ctx)
	go func() {
		if err := <-done; err != nil {
			a.logger.Warn(ctx, "previous session not restored", "error", err)
		}
	}()

	printlnFn("Welcome to Country Explorer (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt badge: "(loading)" while the previous session
// is being restored, then "(username)" or nothing.
func (a *App) getStatus() string {
	if a.session.Loading() {
		return "(loading)"
	}
	if u, ok := a.session.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}
