package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/wukonglabs/wukong/internal/auth/http"
	"github.com/wukonglabs/wukong/internal/auth/service"
	"github.com/wukonglabs/wukong/internal/auth/store"
	redisdriver "github.com/wukonglabs/wukong/internal/auth/store/drivers/redis"
	"github.com/wukonglabs/wukong/internal/auth/store/drivers/sqlite"
	"github.com/wukonglabs/wukong/pkg/cryptox"
	"github.com/wukonglabs/wukong/pkg/jwtx"
	"github.com/wukonglabs/wukong/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	signingKeySize = 32
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     *sqlite.Store
	grants store.GrantStore

	broker      *service.Broker
	issuer      *service.Issuer
	mfa         *service.MFA
	sessions    *service.Sessions
	audit       *service.Audit
	housekeeper *service.Housekeeper

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initGrantStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	ctx := slogx.WithContext(context.Background(), app.logger)
	app.housekeeper.Start(ctx)

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"mode", app.cfg.AuthMode,
		"grant_backend", app.grantBackend(),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeeper.Stop()

	if err := app.Close(); err != nil {
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Close releases the store connections. Safe to call on a partially
// initialized Application.
func (app *Application) Close() error {
	var firstErr error

	if app.grants != nil && app.grantBackend() == "redis" {
		if err := app.grants.Close(); err != nil {
			app.logger.Error("error closing grant store", "error", err)
			firstErr = err
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (app *Application) grantBackend() string {
	if app.cfg.RedisAddr != "" {
		return "redis"
	}
	return "sqlite"
}

// initDatabase opens the SQLite store and applies migrations.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initGrantStore picks where codes and access tokens live. SQLite by default;
// Redis when AUTH_REDIS_ADDR is set, which lets several console replicas
// share one grant pool.
func (app *Application) initGrantStore() error {
	if app.cfg.RedisAddr == "" {
		app.grants = app.db
		return nil
	}

	grants, err := redisdriver.NewGrantStore(app.cfg.RedisAddr, app.cfg.RedisPass, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.grants = grants
	return nil
}

// initServices derives the signing keys and builds the business services.
func (app *Application) initServices() error {
	secret := []byte(app.cfg.CookieSecret)

	// Separate keys per purpose so a leaked ID assertion can never pass as a
	// session credential.
	sessionKey, err := cryptox.DeriveKey(secret, "session-credential", signingKeySize)
	if err != nil {
		return err
	}
	assertionKey, err := cryptox.DeriveKey(secret, "id-assertion", signingKeySize)
	if err != nil {
		return err
	}

	sessionSigner, err := jwtx.NewSigner(sessionKey, app.cfg.Issuer)
	if err != nil {
		return err
	}
	sessionVerifier, err := jwtx.NewVerifier(sessionKey, app.cfg.Issuer)
	if err != nil {
		return err
	}
	assertionSigner, err := jwtx.NewSigner(assertionKey, app.cfg.Issuer)
	if err != nil {
		return err
	}
	assertionVerifier, err := jwtx.NewVerifier(assertionKey, app.cfg.Issuer)
	if err != nil {
		return err
	}

	app.audit = service.NewAudit(app.db)

	app.broker = service.NewBroker(app.grants)
	app.broker.CodeTTL = app.cfg.CodeTTL

	app.issuer = &service.Issuer{
		Broker:     app.broker,
		Grants:     app.grants,
		Identities: app.db,

		SessionSigner:     sessionSigner,
		SessionVerifier:   sessionVerifier,
		AssertionSigner:   assertionSigner,
		AssertionVerifier: assertionVerifier,

		Mode:           service.AuthenticationMode(app.cfg.AuthMode),
		AccessTokenTTL: app.cfg.AccessTokenTTL,
		SessionTTL:     app.cfg.SessionTTL,
		Scope:          service.DefaultScope,
	}

	app.mfa = service.NewMFA(app.db, app.audit, app.cfg.Issuer)

	app.sessions = service.NewSessions(app.db, app.audit)
	app.sessions.TTL = app.cfg.DeviceTTL

	app.housekeeper = service.NewHousekeeper(app.grants, app.db)
	app.housekeeper.Interval = app.cfg.SweepInterval

	return nil
}

// initHTTP builds the router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.grants, app.logger)

	router.Broker = app.broker
	router.Issuer = app.issuer
	router.MFA = app.mfa
	router.Sessions = app.sessions
	router.Audit = app.audit

	router.ClientID = app.cfg.ClientID
	router.DefaultRedirect = app.cfg.DefaultRedirect
	router.Cookies = httpapi.CookieConfig{
		Name:       app.cfg.CookieName,
		Domain:     app.cfg.CookieDomain,
		Secure:     app.cfg.Env != "dev",
		SessionTTL: app.cfg.SessionTTL,
		DeviceTTL:  app.cfg.DeviceTTL,
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
