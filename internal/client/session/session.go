// Package session holds the authentication state shared by every resource
// client: the access/refresh token pair and the identity of the signed-in
// admin. There is exactly one live Store per process; it is handed to
// dependents explicitly, never read from ambient globals.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotAuthenticated is returned when auth headers are requested and no
// session exists. Callers must not attempt an authenticated resource call
// after seeing it.
var ErrNotAuthenticated = errors.New("not authenticated")

// Header names the backend expects on every authenticated call. Both carry
// a Bearer-prefixed token.
const (
	AccessHeaderName  = "Authorization"
	RefreshHeaderName = "Authorization-Refresh"
)

// Session is one authenticated admin sign-in.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
}

// Claims are the access-token claims the console cares about. They are
// decoded without signature verification: the client only displays them and
// uses exp to skip restoring a dead session, the server remains the
// authority on token validity.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token lifetime has passed.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Store owns the current Session. All access is through the mutex so that a
// token rotation never tears a half-written pair: readers always observe a
// matched access/refresh pair, and a request that already copied its headers
// keeps them for its full lifetime.
type Store struct {
	mu   sync.RWMutex
	sess *Session
}

func NewStore() *Store {
	return &Store{}
}

// Set installs a new session, replacing any previous one.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
}

// Clear destroys the current session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
}

// IsAuthenticated reports whether a session is live.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess != nil
}

// Current returns a copy of the live session, or ErrNotAuthenticated.
func (s *Store) Current() (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return Session{}, ErrNotAuthenticated
	}
	return *s.sess, nil
}

// AuthHeaders returns the header pair to attach to an authenticated request.
// The values are snapshots: a later token rotation does not mutate a header
// map already handed out.
func (s *Store) AuthHeaders() (map[string]string, error) {
	sess, err := s.Current()
	if err != nil {
		return nil, err
	}
	return map[string]string{
		AccessHeaderName:  "Bearer " + sess.AccessToken,
		RefreshHeaderName: "Bearer " + sess.RefreshToken,
	}, nil
}

// Claims decodes the current access token's claims, unverified.
func (s *Store) Claims() (Claims, error) {
	sess, err := s.Current()
	if err != nil {
		return Claims{}, err
	}
	return ParseClaims(sess.AccessToken)
}

// ParseClaims decodes token claims without verifying the signature.
func ParseClaims(token string) (Claims, error) {
	var mc jwt.MapClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &mc); err != nil {
		return Claims{}, fmt.Errorf("parsing access token: %w", err)
	}

	c := Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
