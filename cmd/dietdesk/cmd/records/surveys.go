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

// surveyView is the structured output of surveys show.
type surveyView struct {
	Survey   *records.Survey   `json:"survey" yaml:"survey"`
	Position carousel.Position `json:"position" yaml:"position"`
	Paging   dietdesk.PageInfo `json:"paging" yaml:"paging"`
}

func openSurveys(cmd *cobra.Command, app appcontext.Interface, f *viewFlags) (*dietdesk.Workspace, error) {
	surveys, err := app.Store().LoadSurveys(f.file)
	if err != nil {
		return nil, err
	}
	if f.client != "" {
		surveys = records.ForClient(surveys, f.client, func(s records.Survey) string { return s.ClientID })
	}

	ws, err := f.workspace(app)
	if err != nil {
		return nil, err
	}
	if err := ws.SelectClient(cmd.Context(), dietdesk.Client{ID: f.client, Surveys: surveys}); err != nil {
		return nil, err
	}
	if err := ws.SurveyPage(f.page); err != nil {
		return nil, err
	}
	return ws, nil
}

func newSurveyShowCommand(app appcontext.Interface) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one survey",
		Example: `  dietdesk surveys show -f surveys.yaml            # newest survey
  dietdesk surveys show -f surveys.yaml --index 2  # the one before it
  dietdesk surveys show -f surveys.yaml --index -1 # oldest on the page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := flags.steps()
			if err != nil {
				return err
			}
			ws, err := openSurveys(cmd, app, &flags)
			if err != nil {
				return err
			}
			step(n, ws.NextSurvey, ws.PreviousSurvey)

			survey, pos, ok := ws.CurrentSurvey()
			format := app.OutputFormat()
			w := cmd.OutOrStdout()
			if format == output.FormatTable {
				if !ok {
					_, err := fmt.Fprintln(w, output.PositionLabel(pos))
					return err
				}
				return output.NewFormatter(format).Format(w, output.SurveyToTableData(survey, pos))
			}

			view := surveyView{Position: pos, Paging: ws.SurveyPages()}
			if ok {
				view.Survey = &survey
			}
			return output.NewFormatter(format).Format(w, view)
		},
	}
	addViewFlags(cmd, &flags)
	return cmd
}

// surveyRow is one line of surveys list.
type surveyRow struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	WeightKg *float64 `json:"weight_kg"`
	WaistCm  *float64 `json:"waist_cm"`
	Energy   int      `json:"energy"`
	Sleep    int      `json:"sleep"`
}

func newSurveyListCommand(app appcontext.Interface) *cobra.Command {
	var flags viewFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of surveys, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openSurveys(cmd, app, &flags)
			if err != nil {
				return err
			}

			var page []records.Survey
			for {
				s, pos, ok := ws.CurrentSurvey()
				if !ok {
					break
				}
				page = append(page, s)
				if pos.Index == pos.Total {
					break
				}
				ws.NextSurvey()
			}

			format := app.OutputFormat()
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), page)
			}
			rows := make([]surveyRow, len(page))
			for i, s := range page {
				rows[i] = surveyRow{
					ID:       s.ID,
					Date:     s.Date.Format(constants.DateFormat),
					WeightKg: s.WeightKg,
					WaistCm:  s.WaistCm,
					Energy:   s.Energy,
					Sleep:    s.Sleep,
				}
			}
			if len(rows) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), rows)
		},
	}
	addViewFlags(cmd, &flags)
	_ = cmd.Flags().MarkHidden("index")
	return cmd
}
