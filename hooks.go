package dietdesk

import (
	"sync"

	"github.com/agentstation/dietdesk/pkg/reconcile"
)

// Hook function types for workspace events
type (
	// ClientSelectedHook is called after the workspace switches client
	ClientSelectedHook func(client Client)

	// CommittedHook is called after a profile was created for a client
	CommittedHook func(clientID string, payload reconcile.Payload)
)

// hooks manages event callbacks
type hooks struct {
	mu               sync.RWMutex
	onClientSelected []ClientSelectedHook
	onCommitted      []CommittedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnClientSelected registers a callback for client switches
func (h *hooks) OnClientSelected(fn ClientSelectedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClientSelected = append(h.onClientSelected, fn)
}

// OnCommitted registers a callback for created profiles
func (h *hooks) OnCommitted(fn CommittedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCommitted = append(h.onCommitted, fn)
}

func (h *hooks) clientSelected(c Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onClientSelected {
		fn(c)
	}
}

func (h *hooks) committed(clientID string, payload reconcile.Payload) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onCommitted {
		fn(clientID, payload)
	}
}
