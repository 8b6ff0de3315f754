package records

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/dietdesk"
	"github.com/agentstation/dietdesk/internal/appcontext"
	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/pkg/carousel"
	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/records"
)

// bloodView is the structured output of blood show.
type bloodView struct {
	Report   *records.BloodReport `json:"report" yaml:"report"`
	Position carousel.Position    `json:"position" yaml:"position"`
	Paging   dietdesk.PageInfo    `json:"paging" yaml:"paging"`
}

func openBlood(cmd *cobra.Command, app appcontext.Interface, f *viewFlags) (*dietdesk.Workspace, error) {
	reports, err := app.Store().LoadBloodReports(f.file)
	if err != nil {
		return nil, err
	}
	if f.client != "" {
		reports = records.ForClient(reports, f.client, func(b records.BloodReport) string { return b.ClientID })
	}

	ws, err := f.workspace(app)
	if err != nil {
		return nil, err
	}
	if err := ws.SelectClient(cmd.Context(), dietdesk.Client{ID: f.client, BloodReports: reports}); err != nil {
		return nil, err
	}
	if err := ws.BloodReportPage(f.page); err != nil {
		return nil, err
	}
	return ws, nil
}

func newBloodShowCommand(app appcontext.Interface) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one blood-test report",
		Example: `  dietdesk blood show -f blood.yaml             # latest report
  dietdesk blood show -f blood.yaml --index 2   # the one before it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := flags.steps()
			if err != nil {
				return err
			}
			ws, err := openBlood(cmd, app, &flags)
			if err != nil {
				return err
			}
			step(n, ws.NextBloodReport, ws.PreviousBloodReport)

			report, pos, ok := ws.CurrentBloodReport()
			format := app.OutputFormat()
			w := cmd.OutOrStdout()
			if format == output.FormatTable {
				if !ok {
					_, err := fmt.Fprintln(w, output.PositionLabel(pos))
					return err
				}
				return output.NewFormatter(format).Format(w, output.BloodToTableData(report, pos))
			}

			view := bloodView{Position: pos, Paging: ws.BloodReportPages()}
			if ok {
				view.Report = &report
			}
			return output.NewFormatter(format).Format(w, view)
		},
	}
	addViewFlags(cmd, &flags)
	return cmd
}

// bloodRow is one line of blood list.
type bloodRow struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Laboratory string `json:"laboratory"`
	Results    int    `json:"results"`
	Missing    int    `json:"missing"`
}

func newBloodListCommand(app appcontext.Interface) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of blood-test reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openBlood(cmd, app, &flags)
			if err != nil {
				return err
			}

			var page []records.BloodReport
			for {
				b, pos, ok := ws.CurrentBloodReport()
				if !ok {
					break
				}
				page = append(page, b)
				if pos.Index == pos.Total {
					break
				}
				ws.NextBloodReport()
			}

			format := app.OutputFormat()
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), page)
			}
			if len(page) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return err
			}
			rows := make([]bloodRow, len(page))
			for i, b := range page {
				missing := 0
				for _, r := range b.Results {
					if r.Value == nil {
						missing++
					}
				}
				rows[i] = bloodRow{
					ID:         b.ID,
					Date:       b.Date.Format(constants.DateFormat),
					Laboratory: b.Laboratory,
					Results:    len(b.Results),
					Missing:    missing,
				}
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), rows)
		},
	}
	addViewFlags(cmd, &flags)
	_ = cmd.Flags().MarkHidden("index")
	return cmd
}
