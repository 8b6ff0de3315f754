// Package records implements the commands that step through a client's
// surveys and blood-test reports one record at a time.
package records

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/pkg/errors"
)

// viewFlags select which record to show.
type viewFlags struct {
	file     string
	client   string
	page     int
	index    int
	pageSize int
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "record list (yaml or json)")
	cmd.Flags().StringVar(&f.client, "client", "", "only records of this client ID")
	cmd.Flags().IntVar(&f.page, "page", 1, "page of the list, newest records first")
	cmd.Flags().IntVarP(&f.index, "index", "i", 1, "position on the page; out of range wraps around")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "records per page (default from config)")
	_ = cmd.MarkFlagRequired("file")
}

// workspace creates a workspace honoring --page-size.
func (f *viewFlags) workspace(app appcontext.Interface) (*dietdesk.Workspace, error) {
	var opts []dietdesk.Option
	if f.pageSize != 0 {
		opts = append(opts, dietdesk.WithPageSize(f.pageSize))
	}
	return app.Workspace(opts...)
}

// steps converts a 1-based position into the number of forward steps.
// Positions past the end wrap, the same way repeated Next calls do;
// zero and negative positions count back from the last record.
func (f *viewFlags) steps() (int, error) {
	if f.index == 0 {
		return 0, errors.NewValidationError("index", f.index, "must not be zero")
	}
	if f.index > 0 {
		return f.index - 1, nil
	}
	return f.index, nil
}

// step moves a cursor n times forward, or -n times backward.
func step(n int, next, previous func()) {
	for ; n > 0; n-- {
		next()
	}
	for ; n < 0; n++ {
		previous()
	}
}

// NewSurveysCommand creates the surveys command group.
func NewSurveysCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "surveys",
		GroupID: "records",
		Short:   "Browse periodic health surveys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSurveyShowCommand(app))
	cmd.AddCommand(newSurveyListCommand(app))
	return cmd
}

// NewBloodCommand creates the blood command group.
func NewBloodCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blood",
		GroupID: "records",
		Short:   "Browse blood-test reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newBloodShowCommand(app))
	cmd.AddCommand(newBloodListCommand(app))
	return cmd
}
