package dietdesk

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/authority"
	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/logging"
	"github.com/agentstation/dietdesk/pkg/reconcile"
)

// config holds workspace settings.
type config struct {
	logger        *zerolog.Logger
	create        reconcile.CreateFunc
	authority     authority.Authority
	pageSize      int
	engineOptions []reconcile.Option
}

func defaultConfig() *config {
	logger := logging.Component("workspace")
	return &config{
		logger:    &logger,
		authority: authority.Default(),
		pageSize:  constants.DefaultPageSize,
	}
}

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// Option is a function that configures a Workspace.
type Option func(*config) error

// WithLogger sets the logger shared by the workspace, its engine and carousels.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithCreateFunc sets the external call that persists confirmed profiles.
func WithCreateFunc(create reconcile.CreateFunc) Option {
	return func(c *config) error {
		c.create = create
		return nil
	}
}

// WithAuthority sets the field authorities used by ResolveWith(nil).
func WithAuthority(auth authority.Authority) Option {
	return func(c *config) error {
		if auth == nil {
			return &errors.ValidationError{Field: "authority", Message: "cannot be nil"}
		}
		c.authority = auth
		return nil
	}
}

// WithPageSize sets how many records each carousel page holds.
func WithPageSize(size int) Option {
	return func(c *config) error {
		if size < 1 || size > constants.MaxPageSize {
			return errors.NewValidationError("page_size", size, "out of range")
		}
		c.pageSize = size
		return nil
	}
}

// WithEngineOptions passes options through to the reconciliation engine.
func WithEngineOptions(opts ...reconcile.Option) Option {
	return func(c *config) error {
		c.engineOptions = append(c.engineOptions, opts...)
		return nil
	}
}
