package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/internal/store"
	"github.com/agentstation/dietdesk/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	StoreFunc        func() *store.Store
	WorkspaceFunc    func(...dietdesk.Option) (*dietdesk.Workspace, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() output.Format
	PageSizeFunc     func() int
}

// Store returns the mock store or a store with default directories.
func (m *Mock) Store() *store.Store {
	if m.StoreFunc != nil {
		return m.StoreFunc()
	}
	return store.New(store.WithLogger(m.Logger()))
}

// Workspace returns the mock workspace or a new one using the mock logger.
func (m *Mock) Workspace(opts ...dietdesk.Option) (*dietdesk.Workspace, error) {
	if m.WorkspaceFunc != nil {
		return m.WorkspaceFunc(opts...)
	}
	base := []dietdesk.Option{
		dietdesk.WithLogger(m.Logger()),
		dietdesk.WithCreateFunc(m.Store().Create),
		dietdesk.WithPageSize(m.PageSize()),
	}
	return dietdesk.New(append(base, opts...)...)
}

// Logger returns the mock logger or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the mock format or table.
func (m *Mock) OutputFormat() output.Format {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return output.FormatTable
}

// PageSize returns the mock page size or the default.
func (m *Mock) PageSize() int {
	if m.PageSizeFunc != nil {
		return m.PageSizeFunc()
	}
	return constants.DefaultPageSize
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
