package reconcile

import (
	"time"

	"github.com/agentstation/dietdesk/pkg/fields"
)

// Provenance records one change to a working value.
type Provenance struct {
	Field     fields.Name   `json:"field" yaml:"field"`
	Origin    fields.Origin `json:"origin" yaml:"origin"`
	Value     string        `json:"value" yaml:"value"`
	Previous  string        `json:"previous,omitempty" yaml:"previous,omitempty"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Reason    string        `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// tracker keeps per-field provenance history for one working record.
type tracker struct {
	enabled bool
	history map[fields.Name][]Provenance
}

func newTracker(enabled bool) *tracker {
	return &tracker{
		enabled: enabled,
		history: make(map[fields.Name][]Provenance),
	}
}

// track records a change; the newest entry is last.
func (t *tracker) track(p Provenance) {
	if !t.enabled {
		return
	}
	t.history[p.Field] = append(t.history[p.Field], p)
}

// field returns a copy of one field's history.
func (t *tracker) field(name fields.Name) []Provenance {
	if !t.enabled {
		return nil
	}
	return append([]Provenance(nil), t.history[name]...)
}

// current returns the origin of the latest change to a field.
func (t *tracker) current(name fields.Name) fields.Origin {
	h := t.history[name]
	if len(h) == 0 {
		return ""
	}
	return h[len(h)-1].Origin
}

func (t *tracker) clear() {
	t.history = make(map[fields.Name][]Provenance)
}
