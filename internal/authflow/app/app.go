package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/tuskera/authflow/internal/authflow/http"
	"github.com/tuskera/authflow/internal/authflow/notify"
	"github.com/tuskera/authflow/internal/authflow/service"
	"github.com/tuskera/authflow/internal/authflow/store"
	"github.com/tuskera/authflow/internal/authflow/store/drivers/sqlite"
	"github.com/tuskera/authflow/pkg/cryptox"
	"github.com/tuskera/authflow/pkg/slogx"
	"github.com/tuskera/authflow/pkg/trustx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the login service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	notifier notify.Notifier
	trust    *trustx.Codec

	flowService         *service.FlowService
	userService         *service.UserService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "authflow",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	trust, err := trustx.NewCodec([]byte(cfg.TrustSecret))
	if err != nil {
		return nil, fmt.Errorf("AUTHFLOW_TRUST_SECRET: %w", err)
	}
	app.trust = trust

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	if empty, err := app.db.Users().IsEmpty(context.Background()); err == nil && empty {
		app.logger.Warn("user directory is empty, provision accounts via POST /v1/users")
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("authflow starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	app.logger.Info("shutting down authflow...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("authflow stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initNotifier selects the mailer backend.
func (app *Application) initNotifier() error {
	switch app.cfg.Mailer {
	case "log":
		if app.cfg.Env == "prod" {
			return fmt.Errorf("log mailer is not allowed in prod")
		}
		app.notifier = notify.LogNotifier{}
		app.logger.Warn("using log mailer, codes are written to the log")
	case "smtp":
		smtp, err := notify.NewSMTP(notify.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
		})
		if err != nil {
			return fmt.Errorf("failed to configure smtp mailer: %w", err)
		}
		app.notifier = smtp
	default:
		return fmt.Errorf("unknown mailer %q", app.cfg.Mailer)
	}
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.flowService = &service.FlowService{
		Store:      app.db,
		Notifier:   app.notifier,
		Trust:      app.trust,
		CodeTTL:    app.cfg.CodeTTL,
		TrustTTL:   app.cfg.TrustTTL,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.userService = &service.UserService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	router.FlowService = app.flowService
	router.UserService = app.userService
	router.Cookies = httpapi.CookieConfig{
		Secure:     app.cfg.CookieSecure,
		SessionTTL: app.cfg.SessionTTL,
		TrustTTL:   app.cfg.TrustTTL,
	}
	router.AdminToken = app.cfg.AdminToken
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
