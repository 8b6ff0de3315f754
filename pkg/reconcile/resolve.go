package reconcile

import (
	"github.com/agentstation/dietdesk/pkg/authority"
	"github.com/agentstation/dietdesk/pkg/fields"
)

// ResolveWith fills each working value from the highest-priority candidate
// source that has a number for it. Sources without a value are skipped, and
// fields no rule can fill are left untouched. It returns how many changed.
func (e *Engine) ResolveWith(auth authority.Authority, c Candidates) int {
	if auth == nil {
		return 0
	}

	changed := 0
	for _, name := range e.eligible {
		for _, rule := range auth.Find(name) {
			src := c.From(rule.Source)
			v, ok := src.Number(name)
			if !ok {
				continue
			}
			if e.set(name, fields.Format(v), rule.Source, "selected by authority "+rule.Path) {
				changed++
			}
			break
		}
	}

	e.logger.Debug().Int("changed", changed).Msg("Resolved fields by authority")
	return changed
}
