// Package carousel provides a cursor over an ordered list of records that
// steps forward and backward with wraparound.
//
// A Carousel is either Empty (no items, no valid index) or Populated. The
// only way between the two is Reset or Replace. Within Populated, Next and
// Previous cycle through every index; with a single item they do nothing.
package carousel

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/dietdesk/pkg/errors"
	"github.com/agentstation/dietdesk/pkg/logging"
)

// Position is the 1-based display position. It is {0, 0} when empty.
type Position struct {
	Index int `json:"index" yaml:"index"`
	Total int `json:"total" yaml:"total"`
}

// Carousel is a bounded circular cursor. It never mutates its items.
// The zero value is an empty carousel ready to use.
type Carousel[T any] struct {
	items  []T
	index  int
	logger *zerolog.Logger
}

// Option configures a Carousel.
type Option func(*config)

type config struct {
	logger *zerolog.Logger
}

// WithLogger sets the logger used to report stale-index clamps.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a carousel positioned at the first item.
func New[T any](items []T, opts ...Option) *Carousel[T] {
	logger := logging.Component("carousel")
	cfg := &config{logger: &logger}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Carousel[T]{items: items, logger: cfg.logger}
}

// Len returns the number of items.
func (c *Carousel[T]) Len() int {
	return len(c.items)
}

// Empty reports whether there are no items.
func (c *Carousel[T]) Empty() bool {
	return len(c.items) == 0
}

// Index returns the 0-based cursor.
func (c *Carousel[T]) Index() int {
	c.guard()
	return c.index
}

// Current returns the item under the cursor; ok is false when empty.
func (c *Carousel[T]) Current() (item T, ok bool) {
	c.guard()
	if len(c.items) == 0 {
		return item, false
	}
	return c.items[c.index], true
}

// Next advances the cursor, wrapping from the last item to the first.
func (c *Carousel[T]) Next() {
	c.guard()
	n := len(c.items)
	if n <= 1 {
		return
	}
	c.index = (c.index + 1) % n
}

// Previous moves the cursor back, wrapping from the first item to the last.
func (c *Carousel[T]) Previous() {
	c.guard()
	n := len(c.items)
	if n <= 1 {
		return
	}
	c.index = (c.index - 1 + n) % n
}

// Reset replaces the items and returns the cursor to the first one.
// Call it whenever the data source changes identity, e.g. another client.
func (c *Carousel[T]) Reset(items []T) {
	c.items = items
	c.index = 0
}

// Replace swaps the items but keeps the cursor, clamping it to the last
// valid index if the list shrank. Use it to refresh the same list.
func (c *Carousel[T]) Replace(items []T) {
	c.items = items
	c.guard()
}

// Position returns the 1-based index and total for display.
func (c *Carousel[T]) Position() Position {
	c.guard()
	if len(c.items) == 0 {
		return Position{}
	}
	return Position{Index: c.index + 1, Total: len(c.items)}
}

// Seek moves the cursor to a 0-based index and reports whether it was in range.
func (c *Carousel[T]) Seek(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.index = index
	return true
}

// guard clamps an out-of-range cursor instead of failing.
func (c *Carousel[T]) guard() {
	n := len(c.items)
	switch {
	case n == 0:
		c.index = 0
	case c.index >= n:
		if c.logger != nil {
			c.logger.Warn().
				Err(errors.ErrStaleIndex).
				Int("index", c.index).
				Int("total", n).
				Msg("Clamped stale carousel index")
		}
		c.index = n - 1
	case c.index < 0:
		c.index = 0
	}
}
