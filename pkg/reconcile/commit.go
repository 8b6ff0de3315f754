package reconcile

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agentstation/dietdesk/pkg/constants"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
)

// Payload is the exact shape handed to the external "create nutrition profile" call.
// A nil value means the field was left blank.
type Payload struct {
	Name   string                   `json:"name" yaml:"name"`
	Values map[fields.Name]*float64 `json:"values" yaml:"values"`
}

// CreateFunc persists a finished profile. Its failure is the caller's concern.
type CreateFunc func(ctx context.Context, payload Payload) error

// PendingCommit is an immutable snapshot awaiting confirmation.
type PendingCommit struct {
	id        string
	name      string
	order     []fields.Name
	values    map[fields.Name]*float64
	createdAt time.Time
}

// ID returns the snapshot identifier.
func (p *PendingCommit) ID() string { return p.id }

// Name returns the trimmed profile name.
func (p *PendingCommit) Name() string { return p.name }

// CreatedAt returns when the snapshot was taken.
func (p *PendingCommit) CreatedAt() time.Time { return p.createdAt }

// Fields returns the field names in display order.
func (p *PendingCommit) Fields() []fields.Name {
	return append([]fields.Name(nil), p.order...)
}

// Value returns the coerced value of one field. ok is false for unknown fields;
// v is nil for blank fields.
func (p *PendingCommit) Value(name fields.Name) (v *float64, ok bool) {
	v, ok = p.values[name]
	if v != nil {
		c := *v
		v = &c
	}
	return v, ok
}

// Payload returns a fresh copy of the snapshot in the create-call shape.
func (p *PendingCommit) Payload() Payload {
	values := make(map[fields.Name]*float64, len(p.values))
	for name, v := range p.values {
		if v == nil {
			values[name] = nil
			continue
		}
		c := *v
		values[name] = &c
	}
	return Payload{Name: p.name, Values: values}
}

// RequestCommit validates the working record and snapshots it.
// The name must be non-blank and at most constants.MaxNameLength characters,
// and every field must coerce: blank text becomes
// nil, anything else must parse as a number. All problems are reported
// together in an *errors.CommitError and nothing changes on failure.
// On success the snapshot replaces any earlier pending commit.
func (e *Engine) RequestCommit(name string) (*PendingCommit, error) {
	var rejected errors.CommitError

	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		rejected.NameErr = errors.ErrEmptyName
	case utf8.RuneCountInString(trimmed) > constants.MaxNameLength:
		rejected.NameErr = errors.ErrNameTooLong
	}

	values := make(map[fields.Name]*float64, len(e.eligible))
	for _, field := range e.eligible {
		v, err := fields.Coerce(e.working[field])
		if err != nil {
			rejected.Fields = append(rejected.Fields, errors.NewNumericFieldError(string(field), e.working[field], err))
			continue
		}
		values[field] = v
	}

	if rejected.NameErr != nil || len(rejected.Fields) > 0 {
		e.logger.Warn().
			Bool("name_rejected", rejected.HasNameError()).
			Strs("invalid_fields", rejected.FieldNames()).
			Msg("Commit rejected")
		return nil, &rejected
	}

	e.pending = &PendingCommit{
		id:        e.newID(),
		name:      trimmed,
		order:     append([]fields.Name(nil), e.eligible...),
		values:    values,
		createdAt: e.now(),
	}

	e.logger.Debug().
		Str("pending_id", e.pending.id).
		Str("name", trimmed).
		Msg("Commit requested")
	return e.pending, nil
}

// Pending returns the snapshot awaiting confirmation, or nil.
func (e *Engine) Pending() *PendingCommit {
	return e.pending
}

// ConfirmCommit hands the pending snapshot to create and clears it.
// The snapshot must be the one currently pending; anything else is rejected
// with a not-found error and create is not called. Pending state is cleared
// before create runs, so it is gone whatever create returns.
func (e *Engine) ConfirmCommit(ctx context.Context, pending *PendingCommit, create CreateFunc) error {
	if create == nil {
		return &errors.ValidationError{Field: "create", Message: "cannot be nil"}
	}
	if pending == nil || e.pending == nil || pending.id != e.pending.id {
		id := ""
		if pending != nil {
			id = pending.id
		}
		return errors.NewNotFoundError("pending commit", id)
	}

	e.pending = nil
	payload := pending.Payload()

	e.logger.Info().
		Str("pending_id", pending.id).
		Str("name", payload.Name).
		Int("field_count", len(payload.Values)).
		Msg("Commit confirmed")

	return create(ctx, payload)
}

// CancelCommit discards the pending snapshot. It is always safe.
func (e *Engine) CancelCommit() {
	if e.pending != nil {
		e.logger.Debug().Str("pending_id", e.pending.id).Msg("Commit cancelled")
	}
	e.pending = nil
}
