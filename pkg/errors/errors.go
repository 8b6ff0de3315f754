// Package errors provides custom error types for the dietdesk system.
// These errors enable programmatic error checking so callers can attribute
// a failure to a specific field or input and surface it to the operator.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the dietdesk system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyName indicates a commit was attempted with a blank name
	ErrEmptyName = errors.New("name is empty")

	// ErrNameTooLong indicates a commit name longer than the allowed limit
	ErrNameTooLong = errors.New("name is too long")

	// ErrInvalidNumeric indicates a non-empty value that is not a number
	ErrInvalidNumeric = errors.New("invalid numeric value")

	// ErrStaleIndex indicates a cursor pointed past the end of its items
	ErrStaleIndex = errors.New("stale index")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NumericFieldError reports a working value that could not be coerced to a number.
type NumericFieldError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *NumericFieldError) Error() string {
	return fmt.Sprintf("field %s: %q is not a number", e.Field, e.Value)
}

// Unwrap implements errors.Unwrap
func (e *NumericFieldError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NumericFieldError) Is(target error) bool {
	return target == ErrInvalidNumeric || target == ErrInvalidInput
}

// NewNumericFieldError creates a new NumericFieldError
func NewNumericFieldError(field, value string, err error) *NumericFieldError {
	return &NumericFieldError{Field: field, Value: value, Err: err}
}

// CommitError collects every reason a commit request was rejected.
// The name check and the field checks are independent: NameErr is set only
// when the name is blank or too long, and Fields holds one entry per offending field.
type CommitError struct {
	NameErr error
	Fields  []*NumericFieldError
}

// Error implements the error interface
func (e *CommitError) Error() string {
	var parts []string
	if e.NameErr != nil {
		parts = append(parts, e.NameErr.Error())
	}
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "commit rejected: " + strings.Join(parts, "; ")
}

// Unwrap exposes the name error and every field error to errors.Is/As.
func (e *CommitError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields)+1)
	if e.NameErr != nil {
		errs = append(errs, e.NameErr)
	}
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

// HasNameError reports whether the name was rejected.
func (e *CommitError) HasNameError() bool {
	return e.NameErr != nil
}

// FieldNames returns the offending field names in the order they were checked.
func (e *CommitError) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return names
}

// Field returns the error for a single field, or nil.
func (e *CommitError) Field(name string) *NumericFieldError {
	for _, f := range e.Fields {
		if f.Field == name {
			return f
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "commit"
	Resource  string // "pyramid", "survey", "blood report"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsEmptyName checks if an error rejected a blank name
func IsEmptyName(err error) bool {
	return errors.Is(err, ErrEmptyName)
}

// IsNameTooLong checks if an error rejected an over-long name
func IsNameTooLong(err error) bool {
	return errors.Is(err, ErrNameTooLong)
}

// IsInvalidNumeric checks if an error rejected a non-numeric field value
func IsInvalidNumeric(err error) bool {
	return errors.Is(err, ErrInvalidNumeric)
}

// AsCommitError extracts a CommitError from an error chain.
func AsCommitError(err error) (*CommitError, bool) {
	var ce *CommitError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
