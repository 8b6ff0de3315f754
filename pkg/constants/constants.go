// Package constants provides shared constants used throughout the dietdesk codebase.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Display constants
const (
	// MissingValue is shown in place of a candidate value the source does not have.
	MissingValue = "-"
)

// Limit constants
const (
	// DefaultPageSize is the default number of records per page.
	DefaultPageSize = 20

	// MaxPageSize is the maximum allowed page size.
	MaxPageSize = 200

	// MaxNameLength bounds the free-text name of a committed profile.
	MaxNameLength = 256
)

// Path constants
const (
	// DefaultDataDir is where candidate sources and record lists are read from.
	DefaultDataDir = "."

	// DefaultOutputDir is where created nutrition profiles are written.
	DefaultOutputDir = "./pyramids"

	// ConfigFileName is the base name of the optional config file in $HOME.
	ConfigFileName = ".dietdesk"
)

// Format constants
const (
	// DateFormat is the calendar date layout used by record files.
	DateFormat = "2006-01-02"

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)
