// Package state persists small client-side key/value state between console
// runs: the signed-in session and the last successful collection snapshots.
package state

import "context"

// Repository is a key/value store over the local state database.
type Repository interface {
	// Get returns the stored value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany stores all pairs atomically: either every key is written or
	// none is.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Well-known keys.
const (
	KeySessionAccessToken  = "session.access_token"
	KeySessionRefreshToken = "session.refresh_token"
	KeySessionUsername     = "session.username"
)

// CacheKey names the snapshot slot for one resource.
func CacheKey(resource string) string { return "cache." + resource }
