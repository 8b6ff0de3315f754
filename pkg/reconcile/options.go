package reconcile

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/logging"
)

// options configures an Engine.
type options struct {
	logger   *zerolog.Logger
	tracking bool
	now      func() time.Time
	newID    func() string
}

func defaultOptions() *options {
	logger := logging.Component("reconcile")
	return &options{
		logger:   &logger,
		tracking: true,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// Option is a function that configures an Engine.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithLogger sets the engine logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithProvenance enables or disables field-level origin tracking.
func WithProvenance(enabled bool) Option {
	return func(o *options) error {
		o.tracking = enabled
		return nil
	}
}

// WithClock sets the time source used to stamp provenance and pending commits.
func WithClock(now func() time.Time) Option {
	return func(o *options) error {
		if now == nil {
			return &errors.ValidationError{Field: "clock", Message: "cannot be nil"}
		}
		o.now = now
		return nil
	}
}

// WithIDGenerator sets the generator for pending commit IDs.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) error {
		if newID == nil {
			return &errors.ValidationError{Field: "id generator", Message: "cannot be nil"}
		}
		o.newID = newID
		return nil
	}
}
