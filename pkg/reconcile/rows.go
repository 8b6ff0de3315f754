package reconcile

import (
	"github.com/agentstation/dietdesk/pkg/fields"
)

// Row is the read-only display triple for one eligible field.
type Row struct {
	Field       fields.Name   `json:"field" yaml:"field"`
	Existing    string        `json:"existing" yaml:"existing"`
	Algorithmic string        `json:"algorithmic" yaml:"algorithmic"`
	Working     string        `json:"working" yaml:"working"`
	Origin      fields.Origin `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// DeriveRows builds one row per eligible field of the algorithmic source, in
// that source's key order. Candidate values the source lacks render as "-".
// It never mutates its inputs.
func DeriveRows(existing, algorithmic *fields.Source, working map[fields.Name]string) []Row {
	names := algorithmic.Eligible()
	rows := make([]Row, 0, len(names))
	for _, name := range names {
		rows = append(rows, Row{
			Field:       name,
			Existing:    existing.Display(name),
			Algorithmic: algorithmic.Display(name),
			Working:     working[name],
		})
	}
	return rows
}
