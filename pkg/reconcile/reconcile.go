// Package reconcile builds a new nutrition profile by merging two read-only
// candidate sources, a previously saved profile ("existing") and a computed
// recommendation ("algorithmic"), into one editable working record.
//
// The working record holds text, not numbers, because operators edit it
// directly and intermediate states such as "12." must survive. Text is only
// coerced to numbers when a commit is requested.
//
// An Engine is owned by one editing session and is not safe for concurrent
// use; callers serialize data-changed and user-interaction events.
package reconcile

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
)

// Candidates are the two read-only sources offered for a merge.
// Either may be nil when nothing is selected or nothing has been computed yet.
type Candidates struct {
	Existing    *fields.Source
	Algorithmic *fields.Source
}

// From returns the candidate source for an origin, or nil.
func (c Candidates) From(origin fields.Origin) *fields.Source {
	switch origin {
	case fields.OriginExisting:
		return c.Existing
	case fields.OriginAlgorithmic:
		return c.Algorithmic
	default:
		return nil
	}
}

// Engine owns one working record and its pending commit.
type Engine struct {
	logger *zerolog.Logger
	now    func() time.Time
	newID  func() string

	eligible []fields.Name
	working  map[fields.Name]string
	seeded   map[fields.Name]string
	seed     *fields.Source

	provenance *tracker
	pending    *PendingCommit
}

// New creates an empty Engine. Call Initialize before anything else.
func New(opts ...Option) (*Engine, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{
		logger:     o.logger,
		now:        o.now,
		newID:      o.newID,
		working:    make(map[fields.Name]string),
		seeded:     make(map[fields.Name]string),
		provenance: newTracker(o.tracking),
	}, nil
}

// Initialize reseeds the working record from the algorithmic source: every
// numeric, non-meta key gets the text form of its number. A nil source leaves
// the record empty. Calling it again replaces all edits, provenance and any
// pending commit, so it is safe to call whenever the recommendation changes.
func (e *Engine) Initialize(algorithmic *fields.Source) {
	e.seed = algorithmic
	e.eligible = algorithmic.Eligible()
	e.working = make(map[fields.Name]string, len(e.eligible))
	e.seeded = make(map[fields.Name]string, len(e.eligible))
	e.provenance.clear()
	e.pending = nil

	now := e.now()
	for _, name := range e.eligible {
		v, _ := algorithmic.Number(name)
		text := fields.Format(v)
		e.working[name] = text
		e.seeded[name] = text
		e.provenance.track(Provenance{
			Field:     name,
			Origin:    fields.OriginAlgorithmic,
			Value:     text,
			Timestamp: now,
			Reason:    "seeded from recommendation",
		})
	}

	e.logger.Debug().
		Int("field_count", len(e.eligible)).
		Bool("has_source", algorithmic != nil).
		Msg("Initialized working record")
}

// Reset discards all edits by reseeding from the last algorithmic source.
func (e *Engine) Reset() {
	e.Initialize(e.seed)
}

// Fields returns the eligible field names in display order.
func (e *Engine) Fields() []fields.Name {
	return append([]fields.Name(nil), e.eligible...)
}

// Value returns the working text for a field.
func (e *Engine) Value(name fields.Name) (string, bool) {
	v, ok := e.working[name]
	return v, ok
}

// Working returns a copy of the working record.
func (e *Engine) Working() map[fields.Name]string {
	out := make(map[fields.Name]string, len(e.working))
	for k, v := range e.working {
		out[k] = v
	}
	return out
}

// Dirty reports whether any working value differs from what Initialize seeded.
func (e *Engine) Dirty() bool {
	for name, v := range e.working {
		if e.seeded[name] != v {
			return true
		}
	}
	return false
}

// Rows derives the display rows for the current working record.
func (e *Engine) Rows(c Candidates) []Row {
	rows := DeriveRows(c.Existing, c.Algorithmic, e.working)
	for i := range rows {
		rows[i].Origin = e.provenance.current(rows[i].Field)
	}
	return rows
}

// CopyAll overwrites every working value for which the chosen source has a
// number. Keys the source lacks, meta fields, and keys outside the working
// record are left alone. It returns how many values changed and is a no-op
// when the chosen source is nil.
func (e *Engine) CopyAll(from fields.Origin, c Candidates) int {
	src := c.From(from)
	if src == nil {
		e.logger.Debug().Str("source", from.String()).Msg("Copy skipped: source unavailable")
		return 0
	}

	changed := 0
	for _, name := range e.eligible {
		if e.copyOne(name, from, src) {
			changed++
		}
	}

	e.logger.Debug().
		Str("source", from.String()).
		Int("changed", changed).
		Msg("Copied all fields")
	return changed
}

// CopyField is CopyAll restricted to one field. It reports whether the value
// changed; a field that is absent or non-numeric in the source is a no-op.
func (e *Engine) CopyField(name fields.Name, from fields.Origin, c Candidates) bool {
	src := c.From(from)
	if src == nil {
		return false
	}
	if _, ok := e.working[name]; !ok {
		return false
	}
	changed := e.copyOne(name, from, src)
	if changed {
		e.logger.Debug().
			Str("field", string(name)).
			Str("source", from.String()).
			Msg("Copied field")
	}
	return changed
}

func (e *Engine) copyOne(name fields.Name, from fields.Origin, src *fields.Source) bool {
	v, ok := src.Number(name)
	if !ok {
		return false
	}
	return e.set(name, fields.Format(v), from, "copied from "+from.String())
}

// SetField stores operator text verbatim, without coercion.
// Fields outside the working record are rejected so no extra keys appear.
func (e *Engine) SetField(name fields.Name, raw string) error {
	if _, ok := e.working[name]; !ok {
		return errors.NewNotFoundError("field", string(name))
	}
	e.set(name, raw, fields.OriginManual, "edited by operator")
	return nil
}

// set writes a value and records provenance when it changes.
func (e *Engine) set(name fields.Name, value string, origin fields.Origin, reason string) bool {
	prev := e.working[name]
	if prev == value {
		return false
	}
	e.working[name] = value
	e.provenance.track(Provenance{
		Field:     name,
		Origin:    origin,
		Value:     value,
		Previous:  prev,
		Timestamp: e.now(),
		Reason:    reason,
	})
	return true
}

// Provenance returns the change history of one field, oldest first.
// It is empty when tracking is disabled.
func (e *Engine) Provenance(name fields.Name) []Provenance {
	return e.provenance.field(name)
}
