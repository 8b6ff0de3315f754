// Package app provides the application context and dependency management
// for the dietdesk CLI: configuration, logging, the file store and the
// workspace factory used by every command.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/internal/store"
	"github.com/agentstation/dietdesk/pkg/errors"
)

// App represents the dietdesk application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Store instance (lazy-initialized)
	mu    sync.Mutex
	store *store.Store
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured format, detecting one from the
// terminal when none was set.
func (a *App) OutputFormat() output.Format {
	return output.DetectFormat(a.config.Format)
}

// PageSize returns the configured record page size.
func (a *App) PageSize() int {
	return a.config.PageSize
}

// Store returns the file store, creating it on first use.
func (a *App) Store() *store.Store {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		a.store = store.New(
			store.WithDataDir(a.config.DataDir),
			store.WithOutputDir(a.config.OutputDir),
			store.WithLogger(a.logger),
		)
	}
	return a.store
}

// Workspace creates a workspace that writes confirmed profiles to the store.
func (a *App) Workspace(opts ...dietdesk.Option) (*dietdesk.Workspace, error) {
	base := []dietdesk.Option{
		dietdesk.WithLogger(a.logger),
		dietdesk.WithCreateFunc(a.Store().Create),
		dietdesk.WithPageSize(a.config.PageSize),
	}
	ws, err := dietdesk.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "workspace", "", err)
	}
	return ws, nil
}

// Shutdown releases application resources. Nothing runs in the background,
// so it only flushes a final debug line.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// resetStore drops the cached store after the configuration changed.
func (a *App) resetStore() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store = nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return &errors.ValidationError{Field: "config", Message: "cannot be nil"}
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		a.logger = logger
		return nil
	}
}

// WithStore sets a custom store (useful for testing).
func WithStore(s *store.Store) Option {
	return func(a *App) error {
		a.store = s
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
