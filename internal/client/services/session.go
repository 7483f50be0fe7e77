// Package services contains application services for the admin console:
// session lifecycle around the API client and cached collection listing.
package services

import (
	"context"
	"time"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/repositories/state"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// SessionService drives login/logout/restore. Tokens live in the injected
// session.Store; the state repository only persists them between runs so an
// admin does not re-enter credentials on every start.
type SessionService struct {
	client *api.Client
	store  *session.Store
	repo   state.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewSessionService(client *api.Client, store *session.Store, repo state.Repository, logger logging.Logger) *SessionService {
	return &SessionService{
		client: client,
		store:  store,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Login authenticates and persists the session. Persistence failures are
// not fatal: the in-memory session is already live.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	sess, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	s.persist(ctx, sess)
	return nil
}

func (s *SessionService) persist(ctx context.Context, sess session.Session) {
	pairs := map[string][]byte{
		state.KeySessionAccessToken:  []byte(sess.AccessToken),
		state.KeySessionRefreshToken: []byte(sess.RefreshToken),
		state.KeySessionUsername:     []byte(sess.Username),
	}
	// all three keys or none: a half-persisted session would restore as a
	// token pair with a mismatched username
	if err := s.repo.SetMany(ctx, pairs); err != nil {
		s.logger.Warn(ctx, "failed to persist session", "error", err)
	}
}

// Restore loads a persisted session if one exists and its access token has
// not expired. It reports whether a session was restored. A stale persisted
// session is discarded silently; the admin just logs in again.
func (s *SessionService) Restore(ctx context.Context) (bool, error) {
	at, err := s.repo.Get(ctx, state.KeySessionAccessToken)
	if err != nil {
		return false, err
	}
	if at == nil {
		return false, nil
	}

	claims, err := session.ParseClaims(string(at))
	if err != nil || claims.Expired(s.now()) {
		s.discard(ctx)
		return false, nil
	}

	rt, err := s.repo.Get(ctx, state.KeySessionRefreshToken)
	if err != nil {
		return false, err
	}
	un, err := s.repo.Get(ctx, state.KeySessionUsername)
	if err != nil {
		return false, err
	}

	s.store.Set(session.Session{
		AccessToken:  string(at),
		RefreshToken: string(rt),
		Username:     string(un),
	})
	s.logger.Info(ctx, "session restored", "username", string(un))
	return true, nil
}

// Logout destroys the live session and the persisted copy.
func (s *SessionService) Logout(ctx context.Context) {
	s.store.Clear()
	s.discard(ctx)
	s.logger.Info(ctx, "logged out")
}

func (s *SessionService) discard(ctx context.Context) {
	for _, k := range []string{state.KeySessionAccessToken, state.KeySessionRefreshToken, state.KeySessionUsername} {
		if err := s.repo.Delete(ctx, k); err != nil {
			s.logger.Warn(ctx, "failed to discard persisted session", "key", k, "error", err)
		}
	}
}

// Whoami returns the current session's username and access-token claims.
func (s *SessionService) Whoami() (string, session.Claims, error) {
	sess, err := s.store.Current()
	if err != nil {
		return "", session.Claims{}, err
	}
	claims, err := s.store.Claims()
	if err != nil {
		return sess.Username, session.Claims{}, err
	}
	return sess.Username, claims, nil
}
