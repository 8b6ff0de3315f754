package pyramid

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/pkg/fields"
)

type profileRow struct {
	File   string `json:"file" yaml:"file"`
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Fields int    `json:"fields" yaml:"fields"`
}

// NewListCommand creates the pyramid list subcommand.
func NewListCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles created in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := app.Store()
			paths, err := st.ListProfiles()
			if err != nil {
				return err
			}

			rows := make([]profileRow, 0, len(paths))
			for _, path := range paths {
				src, err := st.LoadProfile(path)
				if err != nil {
					app.Logger().Warn().Err(err).Str("path", path).Msg("Skipping unreadable profile")
					continue
				}
				rows = append(rows, profileRow{
					File:   filepath.Base(path),
					ID:     metaText(src, "id"),
					Name:   metaText(src, "name"),
					Fields: len(src.Eligible()),
				})
			}

			if len(rows) == 0 && app.OutputFormat() == output.FormatTable {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "no profiles in %s\n", st.OutputDir())
				return err
			}
			return output.NewFormatter(app.OutputFormat()).Format(cmd.OutOrStdout(), rows)
		},
	}
}

func metaText(src *fields.Source, name fields.Name) string {
	v, _ := src.Get(name)
	return fields.Text(v)
}
