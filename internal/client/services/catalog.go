package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/panels"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/repositories/state"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// Catalog wraps one panel with a local snapshot cache. Every successful
// list refreshes the snapshot; when the backend is unreachable the last
// snapshot is shown instead, flagged as stale.
type Catalog[E models.Entity] struct {
	panel  *panels.Panel[E]
	repo   state.Repository
	key    string
	logger logging.Logger
}

func NewCatalog[E models.Entity](panel *panels.Panel[E], repo state.Repository, resource string, logger logging.Logger) *Catalog[E] {
	return &Catalog[E]{
		panel:  panel,
		repo:   repo,
		key:    state.CacheKey(resource),
		logger: logger.With("resource", resource),
	}
}

// Panel exposes the wrapped panel for mutations and display.
func (c *Catalog[E]) Panel() *panels.Panel[E] { return c.panel }

// Load fetches the collection, refreshing the snapshot on success. On a
// transport failure it falls back to the cached snapshot when one exists;
// the returned stale flag tells the caller to warn about old data. Any
// other failure (or a transport failure with no snapshot) is returned.
func (c *Catalog[E]) Load(ctx context.Context, opts api.ListOptions) (stale bool, err error) {
	err = c.panel.Load(ctx, opts)
	if err == nil {
		c.saveSnapshot(ctx)
		return false, nil
	}

	var fetchErr *api.FetchError
	if !errors.As(err, &fetchErr) {
		return false, err
	}

	items, ok := c.loadSnapshot(ctx)
	if !ok {
		return false, err
	}

	c.logger.Warn(ctx, "backend unreachable, showing cached snapshot", "error", err)
	c.panel.Restore(items)
	return true, nil
}

func (c *Catalog[E]) saveSnapshot(ctx context.Context) {
	raw, err := json.Marshal(c.panel.Items())
	if err != nil {
		c.logger.Warn(ctx, "failed to encode snapshot", "error", err)
		return
	}
	if err := c.repo.Set(ctx, c.key, raw); err != nil {
		c.logger.Warn(ctx, "failed to store snapshot", "error", err)
	}
}

func (c *Catalog[E]) loadSnapshot(ctx context.Context) ([]E, bool) {
	raw, err := c.repo.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn(ctx, "failed to read snapshot", "error", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var items []E
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn(ctx, "failed to decode snapshot", "error", err)
		return nil, false
	}
	return items, true
}
