package output

import (
	"fmt"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/dietdesk/pkg/carousel"
	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/reconcile"
	"github.com/agentstation/dietdesk/pkg/records"
)

// RowsToTableData converts reconciliation rows to table format.
func RowsToTableData(rows []reconcile.Row) Data {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		working := r.Working
		if working == "" {
			working = constants.MissingValue
		}
		out = append(out, []string{string(r.Field), r.Existing, r.Algorithmic, working, string(r.Origin)})
	}
	return Data{
		Headers:         []string{"Field", "Existing", "Algorithmic", "Working", "Origin"},
		Rows:            out,
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft},
	}
}

// PendingToTableData converts a pending commit to a field/value table.
func PendingToTableData(p *reconcile.PendingCommit) Data {
	rows := make([][]string, 0, len(p.Fields()))
	for _, name := range p.Fields() {
		v, _ := p.Value(name)
		rows = append(rows, []string{string(name), formatNullable(v)})
	}
	return Data{
		Headers:         []string{"Field", "Value"},
		Rows:            rows,
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight},
		Footer:          fmt.Sprintf("Profile %q (%d fields)", p.Name(), len(rows)),
	}
}

// ProvenanceToTableData shows each field's change history, newest first.
func ProvenanceToTableData(history map[fields.Name][]reconcile.Provenance) Data {
	names := make([]fields.Name, 0, len(history))
	for name := range history {
		names = append(names, name)
	}
	slices.Sort(names)

	var rows [][]string
	for _, name := range names {
		entries := slices.Clone(history[name])
		slices.Reverse(entries)
		for i, entry := range entries {
			field, current := "", ""
			if i == 0 {
				field, current = string(name), "→"
			}
			rows = append(rows, []string{
				field,
				current,
				entry.Value,
				entry.Previous,
				string(entry.Origin),
				entry.Timestamp.Format("15:04:05"),
				entry.Reason,
			})
		}
	}
	return Data{
		Headers: []string{"Field", "", "Value", "Previous", "Origin", "When", "Reason"},
		Rows:    rows,
	}
}

// SurveyToTableData renders one survey with its carousel position.
func SurveyToTableData(s records.Survey, pos carousel.Position) Data {
	rows := [][]string{
		{"Survey", s.ID},
		{"Date", s.Date.Format(constants.DateFormat)},
		{"Weight (kg)", formatNullable(s.WeightKg)},
		{"Waist (cm)", formatNullable(s.WaistCm)},
		{"Energy", formatScore(s.Energy)},
		{"Sleep", formatScore(s.Sleep)},
	}
	keys := make([]string, 0, len(s.Answers))
	for k := range s.Answers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		rows = append(rows, []string{Title(k), s.Answers[k]})
	}
	if s.Notes != "" {
		rows = append(rows, []string{"Notes", s.Notes})
	}
	return Data{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
		Footer:  PositionLabel(pos),
	}
}

// BloodToTableData renders one blood report with its carousel position.
func BloodToTableData(b records.BloodReport, pos carousel.Position) Data {
	rows := make([][]string, 0, len(b.Results))
	for _, r := range b.Results {
		rows = append(rows, []string{r.Parameter, formatNullable(r.Value), r.Unit})
	}
	title := b.Date.Format(constants.DateFormat)
	if b.Laboratory != "" {
		title += " " + b.Laboratory
	}
	return Data{
		Headers:         []string{"Parameter", "Value", "Unit"},
		Rows:            rows,
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft},
		Footer:          strings.TrimSpace(title + "  " + PositionLabel(pos)),
	}
}

// PositionLabel renders a carousel position as "2 / 5".
func PositionLabel(pos carousel.Position) string {
	if pos.Total == 0 {
		return "no records"
	}
	return fmt.Sprintf("%d / %d", pos.Index, pos.Total)
}

func formatNullable(v *float64) string {
	if v == nil {
		return constants.MissingValue
	}
	return fields.Format(*v)
}

func formatScore(v int) string {
	if v == 0 {
		return constants.MissingValue
	}
	return fmt.Sprintf("%d", v)
}
