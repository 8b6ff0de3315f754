package pyramid

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/internal/output"
)

// NewRowsCommand creates the pyramid rows subcommand.
func NewRowsCommand(app appcontext.Interface) *cobra.Command {
	var (
		flags   sourceFlags
		history bool
	)
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Show existing, recommended and working values side by side",
		Example: `  dietdesk pyramid rows --existing saved.yaml --algorithmic recommended.yaml
  dietdesk pyramid rows --algorithmic recommended.yaml --existing saved.yaml --resolve --history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(cmd, app, &flags)
			if err != nil {
				return err
			}

			format := app.OutputFormat()
			formatter := output.NewFormatter(format)
			w := cmd.OutOrStdout()

			if history {
				if format == output.FormatTable {
					return formatter.Format(w, output.ProvenanceToTableData(ws.Provenance()))
				}
				return formatter.Format(w, ws.Provenance())
			}

			rows := ws.Rows()
			if format == output.FormatTable {
				return formatter.Format(w, output.RowsToTableData(rows))
			}
			return formatter.Format(w, rows)
		},
	}
	addSourceFlags(cmd, &flags)
	cmd.Flags().BoolVar(&history, "history", false, "show where each working value came from")
	return cmd
}
