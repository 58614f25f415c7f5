package main

import (
	"context"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/envstruct"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/logging"
	"github.com/intinc/platformexplorer/internal/pprofserver"
	"github.com/intinc/platformexplorer/internal/prd"
	"github.com/intinc/platformexplorer/internal/sqlite"
	"github.com/intinc/platformexplorer/internal/validation"
	"github.com/intinc/platformexplorer/internal/webauthnhandler"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type application struct {
	logger          *slog.Logger
	webAuthnHandler *webauthnhandler.WebAuthnHandler
	sessionManager  *scs.SessionManager
	catalog         *catalog.Catalog
	validator       *validation.Validator
	prdGenerator    *prd.Generator
	templates       map[string]*template.Template
	sections        []section
	htmx            *htmx.HTMX
	printer         *message.Printer
	now             func() time.Time
}

type config struct {
	// Addr is the address the application listens on.
	Addr string `env:"PLATFORMEXPLORER_ADDR" envDefault:"localhost:4000"`
	// FQDN is the fully qualified domain name used as the passkey relying party id.
	FQDN string `env:"PLATFORMEXPLORER_FQDN" envDefault:"localhost"`
	// RPOrigin is the origin browsers report during passkey ceremonies. Empty derives it from the listen address.
	RPOrigin string `env:"PLATFORMEXPLORER_RP_ORIGIN" envDefault:""`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"PLATFORMEXPLORER_SQLITE_URL" envDefault:":memory:"`
	// PprofAddr is the loopback address of the pprof server. Empty disables it.
	PprofAddr string `env:"PLATFORMEXPLORER_PPROF_ADDR" envDefault:""`
	// SecureCookies marks the session and CSRF cookies Secure.
	SecureCookies bool `env:"PLATFORMEXPLORER_SECURE_COOKIES" envDefault:"true"`
	// SessionLifetime is the absolute lifetime of a session.
	SessionLifetime time.Duration `env:"PLATFORMEXPLORER_SESSION_LIFETIME" envDefault:"12h"`
}

const (
	sessionCleanupInterval = 24 * time.Hour
	optimizeInterval       = time.Hour
)

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config from environment")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("sqlite_url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "TCP listen")
	}
	rpOrigin := cfg.RPOrigin
	if rpOrigin == "" {
		rpOrigin = "http://" + listener.Addr().String()
	}

	store := sqlite3store.NewWithCleanupInterval(db.ReadWrite.DB, sessionCleanupInterval)
	defer store.StopCleanup()
	sessionManager := scs.New()
	sessionManager.Store = store
	sessionManager.Lifetime = cfg.SessionLifetime
	sessionManager.Cookie.Secure = cfg.SecureCookies
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	webAuthnHandler, err := webauthnhandler.New(cfg.FQDN, []string{rpOrigin}, logger, sessionManager, db)
	if err != nil {
		return errors.Wrap(err, "new webauthn handler")
	}

	app, err := newApplication(logger, sessionManager, webAuthnHandler)
	if err != nil {
		return errors.Wrap(err, "new application")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.serve(ctx, listener)
	})
	g.Go(func() error {
		return db.RunOptimizer(ctx, optimizeInterval)
	})
	if cfg.PprofAddr != "" {
		g.Go(func() error {
			return pprofserver.ListenAndServe(ctx, cfg.PprofAddr, logger)
		})
	}
	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "run server")
	}
	return nil
}

func newApplication(
	logger *slog.Logger,
	sessionManager *scs.SessionManager,
	webAuthnHandler *webauthnhandler.WebAuthnHandler,
) (*application, error) {
	c, err := catalog.Default()
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	validator, err := validation.New(c.Departments())
	if err != nil {
		return nil, errors.Wrap(err, "new validator")
	}
	prdGenerator, err := prd.NewGenerator()
	if err != nil {
		return nil, errors.Wrap(err, "new PRD generator")
	}

	app := &application{
		logger:          logger,
		webAuthnHandler: webAuthnHandler,
		sessionManager:  sessionManager,
		catalog:         c,
		validator:       validator,
		prdGenerator:    prdGenerator,
		htmx:            htmx.New(),
		printer:         message.NewPrinter(language.English),
		now:             time.Now,
	}
	app.sections = app.newSections()
	if app.templates, err = app.parseTemplates(); err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return app, nil
}

func main() {
	ctx := context.Background()
	// The .env file is optional, the environment takes precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Default().LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	level := slog.LevelDebug
	if s, ok := os.LookupEnv("PLATFORMEXPLORER_LOG_LEVEL"); ok {
		var err error
		if level, err = logging.ParseLevel(s); err != nil {
			slog.Default().LogAttrs(ctx, slog.LevelError, "invalid log level", errors.SlogError(err))
			os.Exit(1)
		}
	}
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       level,
		ReplaceAttr: nil,
	})))

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
