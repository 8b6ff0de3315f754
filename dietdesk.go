// Package dietdesk is the nutrition-plan workspace for one client session.
//
// A Workspace owns one reconciliation engine and two record carousels
// (surveys and blood reports). Every operation takes the workspace lock, so
// data-changed events such as SelectClient are serialized with operator
// actions such as CopyField or NextSurvey.
package dietdesk

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/authority"
	"github.com/agentstation/dietdesk/pkg/carousel"
	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/fields"
	"github.com/agentstation/dietdesk/pkg/reconcile"
	"github.com/agentstation/dietdesk/pkg/records"
)

// Client is everything the workspace needs about the selected client.
// Existing and Algorithmic may be nil.
type Client struct {
	ID           string
	Name         string
	Existing     *fields.Source
	Algorithmic  *fields.Source
	Surveys      []records.Survey
	BloodReports []records.BloodReport
}

// Workspace is the editing session for one client at a time.
type Workspace struct {
	mu     sync.Mutex
	config *config
	logger *zerolog.Logger
	hooks  *hooks

	client     Client
	candidates reconcile.Candidates
	engine     *reconcile.Engine
	surveys    *pager[records.Survey]
	blood      *pager[records.BloodReport]
}

// New creates an empty workspace. Select a client before editing.
func New(opts ...Option) (*Workspace, error) {
	cfg := defaultConfig()
	if err := cfg.apply(opts...); err != nil {
		return nil, err
	}

	engineOpts := append([]reconcile.Option{reconcile.WithLogger(cfg.logger)}, cfg.engineOptions...)
	engine, err := reconcile.New(engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		config:  cfg,
		logger:  cfg.logger,
		hooks:   newHooks(),
		engine:  engine,
		surveys: newPager[records.Survey](cfg.pageSize, carousel.WithLogger(cfg.logger)),
		blood:   newPager[records.BloodReport](cfg.pageSize, carousel.WithLogger(cfg.logger)),
	}, nil
}

// SelectClient switches the workspace to another client. The engine is
// reseeded from the client's recommendation and both carousels go back to
// the first page and first record, newest first. The caller's slices are
// not modified.
func (w *Workspace) SelectClient(ctx context.Context, c Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	w.client = c
	w.candidates = reconcile.Candidates{Existing: c.Existing, Algorithmic: c.Algorithmic}
	w.engine.Initialize(c.Algorithmic)

	surveys := append([]records.Survey(nil), c.Surveys...)
	records.SortSurveys(surveys)
	w.surveys.reset(surveys)

	reports := append([]records.BloodReport(nil), c.BloodReports...)
	records.SortBloodReports(reports)
	w.blood.reset(reports)
	w.mu.Unlock()

	w.logger.Info().
		Str("client_id", c.ID).
		Int("fields", len(c.Algorithmic.Eligible())).
		Bool("has_existing", c.Existing != nil).
		Int("surveys", len(surveys)).
		Int("blood_reports", len(reports)).
		Msg("Selected client")

	w.hooks.clientSelected(c)
	return nil
}

// Client returns the selected client.
func (w *Workspace) Client() Client {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.client
}

// SetAlgorithmic replaces the recommendation, e.g. once it has been computed.
// The working record is reseeded, so edits are lost.
func (w *Workspace) SetAlgorithmic(src *fields.Source) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client.Algorithmic = src
	w.candidates.Algorithmic = src
	w.engine.Initialize(src)
}

// SetExisting selects another saved profile to copy from. Edits are kept.
func (w *Workspace) SetExisting(src *fields.Source) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client.Existing = src
	w.candidates.Existing = src
}

// Rows returns the display rows for the working record.
func (w *Workspace) Rows() []reconcile.Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Rows(w.candidates)
}

// Working returns a copy of the working record.
func (w *Workspace) Working() map[fields.Name]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Working()
}

// CopyAll copies every value the chosen source has into the working record.
func (w *Workspace) CopyAll(from fields.Origin) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.CopyAll(from, w.candidates)
}

// CopyField copies one value from the chosen source.
func (w *Workspace) CopyField(name fields.Name, from fields.Origin) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.CopyField(name, from, w.candidates)
}

// SetField stores operator text for one field.
func (w *Workspace) SetField(name fields.Name, raw string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.SetField(name, raw)
}

// ResolveWith fills the working record by field authority.
// A nil authority uses the configured one.
func (w *Workspace) ResolveWith(auth authority.Authority) int {
	if auth == nil {
		auth = w.config.authority
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.ResolveWith(auth, w.candidates)
}

// Reset discards edits.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine.Reset()
}

// Dirty reports whether the working record has unsaved edits.
func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Dirty()
}

// Provenance returns the change history of every field.
func (w *Workspace) Provenance() map[fields.Name][]reconcile.Provenance {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[fields.Name][]reconcile.Provenance)
	for _, name := range w.engine.Fields() {
		if h := w.engine.Provenance(name); len(h) > 0 {
			out[name] = h
		}
	}
	return out
}

// RequestCommit validates the working record and snapshots it.
func (w *Workspace) RequestCommit(name string) (*reconcile.PendingCommit, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.RequestCommit(name)
}

// Pending returns the snapshot awaiting confirmation, or nil.
func (w *Workspace) Pending() *reconcile.PendingCommit {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.engine.Pending()
}

// ConfirmCommit hands the pending snapshot to the configured create call.
// The call runs under the workspace lock and must not call back into the
// workspace. Committed hooks run only when the create call succeeds.
func (w *Workspace) ConfirmCommit(ctx context.Context, pending *reconcile.PendingCommit) error {
	if w.config.create == nil {
		return errors.NewConfigError("workspace", "no create function configured", nil)
	}

	var payload reconcile.Payload
	capture := func(ctx context.Context, p reconcile.Payload) error {
		payload = p
		return w.config.create(ctx, p)
	}

	w.mu.Lock()
	err := w.engine.ConfirmCommit(ctx, pending, capture)
	clientID := w.client.ID
	w.mu.Unlock()

	if err != nil {
		return err
	}
	w.hooks.committed(clientID, payload)
	return nil
}

// CancelCommit discards the pending snapshot.
func (w *Workspace) CancelCommit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.engine.CancelCommit()
}

// OnClientSelected registers a callback for client switches.
func (w *Workspace) OnClientSelected(fn ClientSelectedHook) {
	w.hooks.OnClientSelected(fn)
}

// OnCommitted registers a callback for successfully created profiles.
func (w *Workspace) OnCommitted(fn CommittedHook) {
	w.hooks.OnCommitted(fn)
}
