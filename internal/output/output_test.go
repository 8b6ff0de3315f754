package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dietdesk/internal/output"
	"github.com/agentstation/dietdesk/pkg/carousel"
	pkgerrors "github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/reconcile"
	"github.com/agentstation/dietdesk/pkg/records"
)

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", "yaml", ""} {
		_, err := output.ParseFormat(in)
		assert.NoError(t, err, in)
	}
	_, err := output.ParseFormat("xml")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatYAML, output.DetectFormat("YAML"))
}

func TestRowsToTableData(t *testing.T) {
	rows := []reconcile.Row{
		{Field: "kcal", Existing: "1800", Algorithmic: "2000", Working: "1800", Origin: fields.OriginExisting},
		{Field: "iron", Existing: "-", Algorithmic: "14", Working: ""},
	}
	data := output.RowsToTableData(rows)

	want := [][]string{
		{"kcal", "1800", "2000", "1800", "existing"},
		{"iron", "-", "14", "-", ""},
	}
	if diff := cmp.Diff(want, data.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

type brokenWriter struct{ err error }

func (b brokenWriter) Write([]byte) (int, error) { return 0, b.err }

func TestTableFormatterReportsWriteError(t *testing.T) {
	errClosed := errors.New("pipe closed")
	data := output.Data{
		Headers: []string{"Field", "Working"},
		Rows:    [][]string{{"kcal", "2000"}},
	}
	err := output.NewFormatter(output.FormatTable).Format(brokenWriter{err: errClosed}, data)
	assert.ErrorIs(t, err, errClosed)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := output.Data{
		Headers: []string{"Field", "Value"},
		Rows:    [][]string{{"protein", "120"}},
		Footer:  "1 / 3",
	}
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "protein")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "1 / 3")
}

func TestTableFormatterReflectsStructs(t *testing.T) {
	type item struct {
		FieldName string   `json:"field_name"`
		Value     *float64 `json:"value"`
	}
	var buf bytes.Buffer
	err := output.NewFormatter(output.FormatTable).Format(&buf, []item{{FieldName: "kcal"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "kcal")
	assert.Contains(t, buf.String(), "-")
}

func TestJSONAndYAMLFormatters(t *testing.T) {
	payload := reconcile.Payload{Name: "My Plan", Values: map[fields.Name]*float64{"kcal": fields.Float(1800), "iron": nil}}

	var jsonBuf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatJSON).Format(&jsonBuf, payload))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &decoded))
	assert.Equal(t, "My Plan", decoded["name"])
	values := decoded["values"].(map[string]any)
	assert.Equal(t, 1800.0, values["kcal"])
	assert.Nil(t, values["iron"])

	var yamlBuf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatYAML).Format(&yamlBuf, payload))
	assert.Contains(t, yamlBuf.String(), "name: My Plan")
}

func TestPositionLabel(t *testing.T) {
	assert.Equal(t, "no records", output.PositionLabel(carousel.Position{}))
	assert.Equal(t, "2 / 5", output.PositionLabel(carousel.Position{Index: 2, Total: 5}))
}

func TestBloodToTableData(t *testing.T) {
	report := records.BloodReport{
		ID:         "b1",
		Date:       time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Laboratory: "Central Lab",
		Results: []records.BloodResult{
			{Parameter: "ferritin", Value: fields.Float(35.5), Unit: "ng/mL"},
			{Parameter: "b12"},
		},
	}
	data := output.BloodToTableData(report, carousel.Position{Index: 1, Total: 2})
	assert.Equal(t, [][]string{{"ferritin", "35.5", "ng/mL"}, {"b12", "-", ""}}, data.Rows)
	assert.Equal(t, "2026-02-01 Central Lab  1 / 2", data.Footer)
}

func TestSurveyToTableData(t *testing.T) {
	s := records.Survey{
		ID:       "s1",
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		WeightKg: fields.Float(81.2),
		Energy:   3,
		Answers:  map[string]string{"water_intake": "2l"},
	}
	data := output.SurveyToTableData(s, carousel.Position{Index: 1, Total: 1})
	assert.Contains(t, data.Rows, []string{"Weight (kg)", "81.2"})
	assert.Contains(t, data.Rows, []string{"Sleep", "-"})
	assert.Contains(t, data.Rows, []string{"Water Intake", "2l"})
	assert.Equal(t, "1 / 1", data.Footer)
}

func TestProvenanceToTableData(t *testing.T) {
	ts := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	history := map[fields.Name][]reconcile.Provenance{
		"kcal": {
			{Field: "kcal", Origin: fields.OriginAlgorithmic, Value: "2000", Timestamp: ts},
			{Field: "kcal", Origin: fields.OriginExisting, Value: "1800", Previous: "2000", Timestamp: ts.Add(time.Minute)},
		},
	}
	data := output.ProvenanceToTableData(history)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"kcal", "→", "1800", "2000", "existing", "10:01:00", ""}, data.Rows[0])
	assert.Equal(t, "", data.Rows[1][0])
}
