package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/logging"
)

// options is the configuration for a Store.
type options struct {
	dataDir   string
	outputDir string
	logger    *zerolog.Logger
	now       func() time.Time
	newID     func() string
}

func defaults() *options {
	logger := logging.Component("store")
	return &options{
		dataDir:   constants.DefaultDataDir,
		outputDir: constants.DefaultOutputDir,
		logger:    &logger,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// Option is a function that configures a Store.
type Option func(*options)

// WithDataDir sets the directory relative paths are read from.
func WithDataDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dataDir = dir
		}
	}
}

// WithOutputDir sets where created profiles are written.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.outputDir = dir
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the time source for created profiles.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator sets the generator for created profile IDs.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}
