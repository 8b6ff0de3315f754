// Package records holds the time-ordered client records an operator steps
// through one at a time: periodic health surveys and blood-test reports.
package records

import (
	"cmp"
	"slices"
	"time"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
)

// Dated is a record with a measurement date.
type Dated interface {
	MeasuredAt() time.Time
}

// Survey is one periodic health survey filled in by a client.
type Survey struct {
	ID       string            `json:"id" yaml:"id"`
	ClientID string            `json:"client_id" yaml:"client_id"`
	Date     time.Time         `json:"date" yaml:"date"`
	WeightKg *float64          `json:"weight_kg,omitempty" yaml:"weight_kg,omitempty"`
	WaistCm  *float64          `json:"waist_cm,omitempty" yaml:"waist_cm,omitempty"`
	Energy   int               `json:"energy,omitempty" yaml:"energy,omitempty"`
	Sleep    int               `json:"sleep,omitempty" yaml:"sleep,omitempty"`
	Answers  map[string]string `json:"answers,omitempty" yaml:"answers,omitempty"`
	Notes    string            `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MeasuredAt implements Dated.
func (s Survey) MeasuredAt() time.Time { return s.Date }

// BloodResult is one measured parameter of a blood test.
// Value is nil when the laboratory left the parameter blank.
type BloodResult struct {
	Parameter string   `json:"parameter" yaml:"parameter"`
	Value     *float64 `json:"value" yaml:"value"`
	Unit      string   `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// BloodReport is one blood-test report.
type BloodReport struct {
	ID         string        `json:"id" yaml:"id"`
	ClientID   string        `json:"client_id" yaml:"client_id"`
	Date       time.Time     `json:"date" yaml:"date"`
	Laboratory string        `json:"laboratory,omitempty" yaml:"laboratory,omitempty"`
	Results    []BloodResult `json:"results" yaml:"results"`
}

// MeasuredAt implements Dated.
func (b BloodReport) MeasuredAt() time.Time { return b.Date }

// Result returns the result for a parameter.
func (b BloodReport) Result(parameter string) (BloodResult, bool) {
	for _, r := range b.Results {
		if r.Parameter == parameter {
			return r, true
		}
	}
	return BloodResult{}, false
}

// SortNewestFirst orders records by measurement date, newest first.
// Records with the same date keep their relative order.
func SortNewestFirst[T Dated](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return b.MeasuredAt().Compare(a.MeasuredAt())
	})
}

// ForClient returns the records whose client ID matches.
func ForClient[T any](items []T, clientID string, id func(T) string) []T {
	var out []T
	for _, item := range items {
		if id(item) == clientID {
			out = append(out, item)
		}
	}
	return out
}

// Page returns the 1-based page of items. Pages past the end are empty.
func Page[T any](items []T, page, size int) ([]T, error) {
	if page < 1 {
		return nil, errors.NewValidationError("page", page, "must be at least 1")
	}
	if size < 1 || size > constants.MaxPageSize {
		return nil, errors.NewValidationError("size", size, "out of range")
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}, nil
	}
	end := min(start+size, len(items))
	return items[start:end], nil
}

// Pages returns how many pages of size the items fill.
func Pages(total, size int) int {
	if size < 1 {
		return 0
	}
	return (total + size - 1) / size
}

// Latest returns the most recent record; ok is false for an empty list.
func Latest[T Dated](items []T) (latest T, ok bool) {
	if len(items) == 0 {
		return latest, false
	}
	return slices.MaxFunc(items, func(a, b T) int {
		return cmp.Compare(a.MeasuredAt().UnixNano(), b.MeasuredAt().UnixNano())
	}), true
}

// SortSurveys orders surveys newest first.
func SortSurveys(s []Survey) { SortNewestFirst(s) }

// SortBloodReports orders blood reports newest first.
func SortBloodReports(b []BloodReport) { SortNewestFirst(b) }
