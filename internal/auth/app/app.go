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

	"github.com/snehalbaghel/badgr-server/internal/auth/audit"
	"github.com/snehalbaghel/badgr-server/internal/auth/authcode"
	"github.com/snehalbaghel/badgr-server/internal/auth/backoff"
	httpapi "github.com/snehalbaghel/badgr-server/internal/auth/http"
	"github.com/snehalbaghel/badgr-server/internal/auth/service"
	"github.com/snehalbaghel/badgr-server/internal/auth/store/drivers/sqlite"
	"github.com/snehalbaghel/badgr-server/pkg/cryptox"
	"github.com/snehalbaghel/badgr-server/pkg/httpx"
	"github.com/snehalbaghel/badgr-server/pkg/otelx"
	"github.com/snehalbaghel/badgr-server/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db           *sqlite.Store
	backoffStore backoff.Store
	audit        audit.Publisher
	otel         *otelx.Instrumentation
	codec        *authcode.Codec

	// Services
	tokenService        *service.TokenService
	authorizeService    *service.AuthorizeService
	registrationService *service.RegistrationService
	authcodeService     *service.AuthcodeService
	manifestService     *service.ManifestService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the service logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "badgr-auth",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)
	httpx.LoadRateLimitsFromEnv()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initInfra(ctx); err != nil {
		app.closeInfra()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		app.closeInfra()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		app.closeInfra()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.otel.Shutdown(ctx); err != nil {
		app.logger.Error("error flushing metrics", "error", err)
	}

	if err := app.audit.Close(); err != nil {
		app.logger.Error("error closing audit publisher", "error", err)
	}

	if err := app.backoffStore.Close(); err != nil {
		app.logger.Error("error closing backoff store", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// Handler exposes the routed handler, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// OpenStore opens the SQLite database named by cfg.
func OpenStore(cfg Config) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(sqlite.FileDSN(cfg.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initInfra sets up the backoff store, audit publishers, metrics and the
// authcode codec.
func (app *Application) initInfra(ctx context.Context) error {
	if app.cfg.BackoffRedisURL != "" {
		rs, err := backoff.NewRedisStoreFromURL(ctx, app.cfg.BackoffRedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect backoff store: %w", err)
		}
		app.backoffStore = rs
		app.logger.Info("backoff store enabled", "backend", "redis")
	} else {
		app.backoffStore = backoff.NewMemoryStore()
		app.logger.Info("backoff store enabled", "backend", "memory")
	}

	publishers := []audit.Publisher{audit.LogPublisher{}}
	if app.cfg.AuditAMQPURL != "" {
		pub, err := audit.DialAMQP(app.cfg.AuditAMQPURL, app.cfg.AuditAMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect audit broker: %w", err)
		}
		publishers = append(publishers, pub)
		app.logger.Info("audit events published to amqp", "exchange", app.cfg.AuditAMQPExchange)
	}
	app.audit = audit.Multi(publishers...)

	inst, err := otelx.New(otelx.Config{
		ServiceName:    "badgr-auth",
		ServiceVersion: BuildVersion,
		Enabled:        app.cfg.MetricsEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	app.otel = inst

	codec, err := InitAuthcodeCodec(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.codec = codec

	return nil
}

// closeInfra releases whatever initInfra managed to open.
func (app *Application) closeInfra() {
	if app.audit != nil {
		_ = app.audit.Close()
	}
	if app.backoffStore != nil {
		_ = app.backoffStore.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	metrics := app.otel.Metrics()
	guard := backoff.New(app.backoffStore, app.cfg.BackoffPeriod, app.cfg.BackoffMaximum)

	app.tokenService = &service.TokenService{
		Store:           app.db,
		Backoff:         guard,
		Audit:           app.audit,
		Metrics:         metrics,
		AccessTTL:       app.cfg.AccessTokenTTL,
		RefreshTTL:      app.cfg.RefreshTokenTTL,
		DefaultClientID: app.cfg.DefaultClientID,
	}
	app.authorizeService = &service.AuthorizeService{
		Store:   app.db,
		CodeTTL: app.cfg.CodeTTL,
		Metrics: metrics,
	}
	app.registrationService = &service.RegistrationService{
		Store:   app.db,
		Metrics: metrics,
	}
	app.authcodeService = &service.AuthcodeService{
		Store:   app.db,
		Codec:   app.codec,
		TTL:     app.cfg.AuthcodeTTL,
		Metrics: metrics,
	}

	if app.cfg.ManifestFile != "" {
		manifest, err := service.LoadManifest(app.cfg.ManifestFile)
		if err != nil {
			return err
		}
		app.manifestService = &service.ManifestService{Config: manifest}
		app.logger.Info("badge connect manifest loaded", "apps", len(manifest.Apps))
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	if pruner, ok := app.backoffStore.(service.Pruner); ok {
		app.housekeepingService.Backoff = pruner
		app.housekeepingService.BackoffPolicy = guard.Policy
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.backoffStore,
		app.logger,
	)

	// Wire services to router
	router.TokenService = app.tokenService
	router.AuthorizeService = app.authorizeService
	router.RegistrationService = app.registrationService
	router.AuthcodeService = app.authcodeService
	router.ManifestService = app.manifestService // nil without a manifest file
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
