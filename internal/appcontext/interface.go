// Package appcontext provides the shared application context interface
// used by all commands, so command packages depend on an interface rather
// than on the concrete CLI application.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/internal/store"
)

// Interface defines what commands need from the application.
// The App struct from cmd/dietdesk/app implements it.
type Interface interface {
	// Store returns the file store configured from data_dir and output_dir.
	Store() *store.Store

	// Workspace creates a workspace wired to the app logger, the store's
	// create call and the configured page size. Extra options are applied last.
	Workspace(opts ...dietdesk.Option) (*dietdesk.Workspace, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format.
	OutputFormat() output.Format

	// PageSize returns the configured record page size.
	PageSize() int

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
