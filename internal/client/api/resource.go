package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
)

// ResourceSpec describes one REST collection. Auth requirements are
// per-resource configuration: the backend serves some collections to
// anonymous readers and gates others, and that asymmetry is preserved
// here instead of being globalized.
type ResourceSpec struct {
	// Name is used in operation labels and log lines, e.g. "vehicles".
	Name string
	// Path is the collection path, e.g. "/vehicles".
	Path string
	// PublicList marks the list operation as readable without a session.
	PublicList bool
	// PublicCreate marks the create operation as open to anonymous callers
	// (customer signup). Update and delete always require a session.
	PublicCreate bool
}

// ListOptions are the pagination parameters the backend accepts.
// Zero values mean "backend defaults" and are omitted from the query.
type ListOptions struct {
	Offset int
	Limit  int
}

// Resource is a typed client for one collection. All methods attach the
// current session headers through the injected store (except a public list)
// and fail fast with session.ErrNotAuthenticated before any network call
// when a required session is missing.
type Resource[E models.Entity] struct {
	c    *Client
	spec ResourceSpec
}

// NewResource binds a typed resource client to the shared transport.
func NewResource[E models.Entity](c *Client, spec ResourceSpec) *Resource[E] {
	return &Resource[E]{c: c, spec: spec}
}

// Spec returns the resource configuration.
func (r *Resource[E]) Spec() ResourceSpec { return r.spec }

// List fetches the collection. The response order is preserved verbatim and
// the parsed records are returned without client-side shape validation.
func (r *Resource[E]) List(ctx context.Context, opts ListOptions) ([]E, error) {
	op := r.spec.Name + " list"

	query := url.Values{}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	resp, err := r.c.do(ctx, op, http.MethodGet, r.spec.Path, query, nil, !r.spec.PublicList)
	if err != nil {
		return nil, wrapTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UnexpectedStatusError{Op: op, Status: resp.StatusCode}
	}

	var items []E
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	return items, nil
}

// Create posts a new record and returns the server-assigned one.
func (r *Resource[E]) Create(ctx context.Context, payload any) (E, error) {
	return r.mutate(ctx, r.spec.Name+" create", http.MethodPost, r.spec.Path, payload, !r.spec.PublicCreate)
}

// Update patches an existing record and returns the server's view of it.
func (r *Resource[E]) Update(ctx context.Context, id string, payload any) (E, error) {
	return r.mutate(ctx, r.spec.Name+" update", http.MethodPatch, r.spec.Path+"/"+id, payload, true)
}

// Remove deletes a record. The backend answers 200 with no meaningful body.
func (r *Resource[E]) Remove(ctx context.Context, id string) error {
	op := r.spec.Name + " delete"

	resp, err := r.c.do(ctx, op, http.MethodDelete, r.spec.Path+"/"+id, nil, nil, true)
	if err != nil {
		return wrapTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &RejectedError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp)}
	}
	return nil
}

func (r *Resource[E]) mutate(ctx context.Context, op, method, path string, payload any, authed bool) (E, error) {
	var zero E

	body, err := json.Marshal(payload)
	if err != nil {
		return zero, err
	}

	resp, err := r.c.do(ctx, op, method, path, nil, body, authed)
	if err != nil {
		return zero, wrapTransport(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, &RejectedError{Op: op, Status: resp.StatusCode, Detail: readDetail(resp)}
	}

	var out E
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return zero, &FetchError{Op: op, Err: err}
	}
	return out, nil
}

// wrapTransport converts a low-level request error into the taxonomy:
// a missing session passes through unchanged, everything else becomes
// a FetchError. Errors already classified by the transport keep their type.
func wrapTransport(op string, err error) error {
	if errors.Is(err, session.ErrNotAuthenticated) {
		return err
	}
	var statusErr *UnexpectedStatusError
	if errors.As(err, &statusErr) {
		return err
	}
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &FetchError{Op: op, Err: err}
}

// readDetail extracts the server's `detail` message from an error body,
// tolerating bodies that are missing or not JSON.
func readDetail(resp *http.Response) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Detail
}
