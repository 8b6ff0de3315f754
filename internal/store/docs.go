package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/records"
)

// surveyDoc is the on-disk shape of a survey.
type surveyDoc struct {
	ID       string            `yaml:"id"`
	ClientID string            `yaml:"client_id"`
	Date     any               `yaml:"date"`
	WeightKg any               `yaml:"weight_kg"`
	WaistCm  any               `yaml:"waist_cm"`
	Energy   int               `yaml:"energy"`
	Sleep    int               `yaml:"sleep"`
	Answers  map[string]string `yaml:"answers"`
	Notes    string            `yaml:"notes"`
}

func (d surveyDoc) survey() (records.Survey, error) {
	date, err := parseDate(d.Date)
	if err != nil {
		return records.Survey{}, err
	}
	weight, err := fields.CoerceField("weight_kg", fields.Text(d.WeightKg))
	if err != nil {
		return records.Survey{}, err
	}
	waist, err := fields.CoerceField("waist_cm", fields.Text(d.WaistCm))
	if err != nil {
		return records.Survey{}, err
	}
	return records.Survey{
		ID:       d.ID,
		ClientID: d.ClientID,
		Date:     date,
		WeightKg: weight,
		WaistCm:  waist,
		Energy:   d.Energy,
		Sleep:    d.Sleep,
		Answers:  d.Answers,
		Notes:    d.Notes,
	}, nil
}

// bloodDoc is the on-disk shape of a blood report.
type bloodDoc struct {
	ID         string           `yaml:"id"`
	ClientID   string           `yaml:"client_id"`
	Date       any              `yaml:"date"`
	Laboratory string           `yaml:"laboratory"`
	Results    []bloodResultDoc `yaml:"results"`
}

type bloodResultDoc struct {
	Parameter string `yaml:"parameter"`
	Value     any    `yaml:"value"`
	Unit      string `yaml:"unit"`
}

func (d bloodDoc) report() (records.BloodReport, error) {
	date, err := parseDate(d.Date)
	if err != nil {
		return records.BloodReport{}, err
	}

	raw := make(map[string]string, len(d.Results))
	order := make([]string, 0, len(d.Results))
	units := make(map[string]string, len(d.Results))
	for _, r := range d.Results {
		raw[r.Parameter] = fields.Text(r.Value)
		order = append(order, r.Parameter)
		units[r.Parameter] = r.Unit
	}
	results, err := records.ParseResults(raw, order, units)
	if err != nil {
		return records.BloodReport{}, err
	}

	return records.BloodReport{
		ID:         d.ID,
		ClientID:   d.ClientID,
		Date:       date,
		Laboratory: d.Laboratory,
		Results:    results,
	}, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp, either as text
// or already decoded as a timestamp.
func parseDate(v any) (time.Time, error) {
	if t, ok := v.(time.Time); ok {
		return t, nil
	}
	s := strings.TrimSpace(fields.Text(v))
	if s == "" {
		return time.Time{}, errors.NewValidationError("date", s, "is required")
	}
	if t, err := time.Parse(constants.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.NewValidationError("date", s, "must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

func itemID(id string, index int) string {
	if id != "" {
		return id
	}
	return "#" + strconv.Itoa(index+1)
}
