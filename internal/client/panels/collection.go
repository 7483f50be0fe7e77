// Package panels maintains the in-memory collection behind each console
// panel and drives the panel lifecycle around loads and mutations.
package panels

import (
	"context"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// Collection is the ordered sequence of records a panel displays. Order is
// the server's response order; reconciliation applies the effect of each
// confirmed mutation without a full reload.
type Collection[E models.Entity] struct {
	items  []E
	logger logging.Logger
}

func NewCollection[E models.Entity](logger logging.Logger) *Collection[E] {
	return &Collection[E]{logger: logger}
}

// Replace swaps the whole collection for a freshly listed one.
func (c *Collection[E]) Replace(items []E) {
	c.items = items
}

// Items returns a copy of the current view.
func (c *Collection[E]) Items() []E {
	out := make([]E, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[E]) Len() int { return len(c.items) }

// Find returns the record with the given id.
func (c *Collection[E]) Find(id string) (E, bool) {
	for _, it := range c.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero E
	return zero, false
}

// OnCreated makes a newly created record visible by appending it.
func (c *Collection[E]) OnCreated(record E) {
	c.items = append(c.items, record)
}

// OnUpdated replaces the entry whose id matches the updated record. A
// missing match is an inconsistency between the view and the server; it is
// logged and otherwise a no-op.
func (c *Collection[E]) OnUpdated(ctx context.Context, record E) {
	for i, it := range c.items {
		if it.EntityID() == record.EntityID() {
			c.items[i] = record
			return
		}
	}
	c.logger.Warn(ctx, "reconciliation found no matching record", "id", record.EntityID())
}

// OnDeleted removes the entry with the given id. Matching is by identifier
// only, so records with duplicate-looking display fields are untouched.
func (c *Collection[E]) OnDeleted(ctx context.Context, id string) {
	for i, it := range c.items {
		if it.EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
	c.logger.Warn(ctx, "reconciliation found no matching record", "id", id)
}
