// Package app wires the admin client together: state store, backend client,
// session manager, activity tracker, and the domain services.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Shunadesu/simple-decor-sub001/internal/admin/service"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/session"
	"github.com/Shunadesu/simple-decor-sub001/internal/admin/store"
	"github.com/Shunadesu/simple-decor-sub001/pkg/cryptox"
	"github.com/Shunadesu/simple-decor-sub001/pkg/decorapi"
	"github.com/Shunadesu/simple-decor-sub001/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application bundles the admin client with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	store   *store.Store
	api     *decorapi.Client
	Session *session.Manager
	Tracker *session.Tracker

	// Services
	Users *service.UserService
	Carts *service.CartService
	Blog  *service.BlogService
	Home  *service.HomeService

	trackerStop context.CancelFunc
}

// New creates an Application with all dependencies initialized. The session
// is not hydrated yet; call Start.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "decor-admin",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	secret, err := cryptox.LoadOrCreateSecret(cfg.SecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load sealing secret: %w", err)
	}

	sealer, err := cryptox.NewSealer(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sealer: %w", err)
	}

	st, err := store.NewStore(cfg.StateFile, sealer)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to migrate state store: %w", err)
	}
	app.store = st

	app.api = decorapi.NewClient(cfg.BaseURL)
	app.api.HTTPClient.Timeout = cfg.RequestTimeout
	app.api.Logger = app.logger

	app.Session = session.NewManager(app.api, app.store, session.Config{
		InactivityWindow: cfg.InactivityWindow,
		RefreshFallback:  cfg.RefreshFallback,
		Logger:           app.logger,
	})
	app.Tracker = session.NewTracker(app.Session, cfg.CheckInterval)

	app.Users = service.NewUserService(app.api, cfg.CacheTTL)
	app.Carts = service.NewCartService(app.api)
	app.Blog = service.NewBlogService(app.api, cfg.CacheTTL)
	app.Home = service.NewHomeService(app.api, cfg.CacheTTL)

	return app, nil
}

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Start launches the activity tracker and hydrates the session from durable
// storage. Safe to call once.
func (a *Application) Start(ctx context.Context) error {
	trackerCtx, cancel := context.WithCancel(context.Background())
	a.trackerStop = cancel
	go a.Tracker.Run(trackerCtx)

	if err := a.Session.InitializeAuth(ctx); err != nil {
		return fmt.Errorf("failed to hydrate session: %w", err)
	}

	if !a.Session.Authenticated() {
		a.logger.Info("no stored session, login required")
	}

	return nil
}

// Close tears the application down. The tracker stops first so no activity
// writes race the store closing, then the session manager cancels its refresh
// timer, then the store closes.
func (a *Application) Close() error {
	if a.trackerStop != nil {
		a.trackerStop()
	}
	a.Session.Close()
	return a.store.Close()
}
