package panels

import (
	"context"
	"errors"
	"sync"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// Phase is the panel lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	LoadError
	Mutating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadError:
		return "load error"
	case Mutating:
		return "mutating"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy means an operation is already outstanding for this panel; the
	// re-entrant submit is ignored rather than issued twice.
	ErrBusy = errors.New("operation already in progress")
	// ErrNotLoaded means a mutation was attempted before a successful load.
	ErrNotLoaded = errors.New("panel is not loaded")
)

// Panel ties one resource client to its collection view and enforces the
// lifecycle: Idle -> Loading -> {Loaded, LoadError}; Loaded -> Mutating ->
// Loaded. LoadError is not terminal, a retry re-enters Loading. At most one
// operation is outstanding at a time (the pending flag), and the flag is
// cleared on every outcome path.
type Panel[E models.Entity] struct {
	res    *api.Resource[E]
	coll   *Collection[E]
	logger logging.Logger

	mu      sync.Mutex
	phase   Phase
	pending bool
	closed  bool
	loadErr error
}

func NewPanel[E models.Entity](res *api.Resource[E], logger logging.Logger) *Panel[E] {
	log := logger.With("panel", res.Spec().Name)
	return &Panel[E]{
		res:    res,
		coll:   NewCollection[E](log),
		logger: log,
	}
}

// Phase returns the current lifecycle state.
func (p *Panel[E]) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Pending reports whether an operation is outstanding.
func (p *Panel[E]) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// LoadErr returns the failure of the last load, if the panel is in LoadError.
func (p *Panel[E]) LoadErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

// Items returns a copy of the collection view.
func (p *Panel[E]) Items() []E { return p.coll.Items() }

// Find looks a displayed record up by id.
func (p *Panel[E]) Find(id string) (E, bool) { return p.coll.Find(id) }

// Close marks the panel as gone. A response arriving after Close must not
// touch the collection; it is dropped with a log line instead of crashing.
func (p *Panel[E]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Load fetches the full collection, also serving as the explicit
// "refetch all" fallback after mutations. Calling it from LoadError is the
// retry path.
func (p *Panel[E]) Load(ctx context.Context, opts api.ListOptions) error {
	p.mu.Lock()
	if p.pending {
		p.mu.Unlock()
		return ErrBusy
	}
	p.pending = true
	p.phase = Loading
	p.mu.Unlock()

	items, err := p.res.List(ctx, opts)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = false
	if p.closed {
		p.logger.Info(ctx, "panel closed, dropping late load result")
		return err
	}
	if err != nil {
		p.phase = LoadError
		p.loadErr = err
		return err
	}
	p.loadErr = nil
	p.coll.Replace(items)
	p.phase = Loaded
	return nil
}

// Restore installs a previously cached collection without a network call
// (stale-data fallback when the backend is unreachable).
func (p *Panel[E]) Restore(items []E) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.coll.Replace(items)
	p.phase = Loaded
	p.loadErr = nil
}

// Create submits a new record and, on success, reconciles the view so the
// created record is visible.
func (p *Panel[E]) Create(ctx context.Context, payload any) (E, error) {
	var zero E
	if err := p.beginMutation(); err != nil {
		return zero, err
	}

	rec, err := p.res.Create(ctx, payload)

	if p.endMutation(ctx) && err == nil {
		p.coll.OnCreated(rec)
	}
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Update patches a record and reconciles the matching entry in place.
func (p *Panel[E]) Update(ctx context.Context, id string, payload any) (E, error) {
	var zero E
	if err := p.beginMutation(); err != nil {
		return zero, err
	}

	rec, err := p.res.Update(ctx, id, payload)

	if p.endMutation(ctx) && err == nil {
		p.coll.OnUpdated(ctx, rec)
	}
	if err != nil {
		return zero, err
	}
	return rec, nil
}

// Remove deletes a record and drops exactly the matching entry. Callers are
// responsible for having obtained destructive confirmation first.
func (p *Panel[E]) Remove(ctx context.Context, id string) error {
	if err := p.beginMutation(); err != nil {
		return err
	}

	err := p.res.Remove(ctx, id)

	if p.endMutation(ctx) && err == nil {
		p.coll.OnDeleted(ctx, id)
	}
	return err
}

// beginMutation moves Loaded -> Mutating and raises the pending flag.
func (p *Panel[E]) beginMutation() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending {
		return ErrBusy
	}
	if p.phase != Loaded {
		return ErrNotLoaded
	}
	p.pending = true
	p.phase = Mutating
	return nil
}

// endMutation clears the pending flag and returns the panel to Loaded on
// every outcome path. It reports whether the panel is still live, i.e.
// whether the caller may reconcile the collection.
func (p *Panel[E]) endMutation(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = false
	if p.closed {
		p.logger.Info(ctx, "panel closed, dropping late mutation result")
		return false
	}
	p.phase = Loaded
	return true
}
