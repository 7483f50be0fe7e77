package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/repositories/state"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/session"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/logging"
)

// fakeRepository is an in-memory state.Repository. A non-nil setManyErr
// makes SetMany fail without writing anything, like a rolled-back
// transaction.
type fakeRepository struct {
	values     map[string][]byte
	setManyErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{values: make(map[string][]byte)}
}

func (r *fakeRepository) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (r *fakeRepository) Set(_ context.Context, key string, value []byte) error {
	r.values[key] = value
	return nil
}

func (r *fakeRepository) SetMany(_ context.Context, values map[string][]byte) error {
	if r.setManyErr != nil {
		return r.setManyErr
	}
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeRepository) Clear(_ context.Context) error {
	r.values = make(map[string][]byte)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func signedToken(t *testing.T, subject string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"exp":  exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionService_Login_PersistsSession(t *testing.T) {
	at := signedToken(t, "admin", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
			"access_token":  at,
			"refresh_token": "rt1",
		}))
	}))
	defer srv.Close()

	store := session.NewStore()
	repo := newFakeRepository()
	client := api.New(srv.URL, srv.Client(), store, testLogger())
	svc := NewSessionService(client, store, repo, testLogger())

	require.NoError(t, svc.Login(context.Background(), "admin", "secret"))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, []byte(at), repo.values[state.KeySessionAccessToken])
	assert.Equal(t, []byte("rt1"), repo.values[state.KeySessionRefreshToken])
	assert.Equal(t, []byte("admin"), repo.values[state.KeySessionUsername])
}

func TestSessionService_Login_PersistFailureIsAllOrNothing(t *testing.T) {
	at := signedToken(t, "admin", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{
			"access_token":  at,
			"refresh_token": "rt1",
		}))
	}))
	defer srv.Close()

	store := session.NewStore()
	repo := newFakeRepository()
	repo.setManyErr = errors.New("disk full")
	client := api.New(srv.URL, srv.Client(), store, testLogger())
	svc := NewSessionService(client, store, repo, testLogger())

	// persistence is best-effort; the in-memory session is already live
	require.NoError(t, svc.Login(context.Background(), "admin", "secret"))
	assert.True(t, store.IsAuthenticated())
	assert.Empty(t, repo.values)
}

func TestSessionService_Restore(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		seed      func(t *testing.T, repo *fakeRepository)
		want      bool
		wantAlive bool
	}{
		{
			name: "valid persisted session",
			seed: func(t *testing.T, repo *fakeRepository) {
				repo.values[state.KeySessionAccessToken] = []byte(signedToken(t, "admin", now.Add(time.Hour)))
				repo.values[state.KeySessionRefreshToken] = []byte("rt1")
				repo.values[state.KeySessionUsername] = []byte("admin")
			},
			want:      true,
			wantAlive: true,
		},
		{
			name: "expired token is discarded",
			seed: func(t *testing.T, repo *fakeRepository) {
				repo.values[state.KeySessionAccessToken] = []byte(signedToken(t, "admin", now.Add(-time.Hour)))
				repo.values[state.KeySessionRefreshToken] = []byte("rt1")
				repo.values[state.KeySessionUsername] = []byte("admin")
			},
		},
		{
			name: "garbage token is discarded",
			seed: func(t *testing.T, repo *fakeRepository) {
				repo.values[state.KeySessionAccessToken] = []byte("not-a-jwt")
			},
		},
		{
			name: "nothing persisted",
			seed: func(t *testing.T, repo *fakeRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore()
			repo := newFakeRepository()
			tt.seed(t, repo)

			svc := NewSessionService(nil, store, repo, testLogger())
			svc.now = func() time.Time { return now }

			restored, err := svc.Restore(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, restored)
			assert.Equal(t, tt.wantAlive, store.IsAuthenticated())
			if !tt.want {
				assert.Nil(t, repo.values[state.KeySessionAccessToken])
			}
		})
	}
}

func TestSessionService_Logout_DiscardsEverything(t *testing.T) {
	store := session.NewStore()
	store.Set(session.Session{AccessToken: "at", RefreshToken: "rt", Username: "admin"})
	repo := newFakeRepository()
	repo.values[state.KeySessionAccessToken] = []byte("at")
	repo.values[state.KeySessionRefreshToken] = []byte("rt")
	repo.values[state.KeySessionUsername] = []byte("admin")

	svc := NewSessionService(nil, store, repo, testLogger())
	svc.Logout(context.Background())

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, repo.values)
}

func TestSessionService_Whoami(t *testing.T) {
	at := signedToken(t, "admin", time.Now().Add(time.Hour))
	store := session.NewStore()
	store.Set(session.Session{AccessToken: at, Username: "admin"})

	svc := NewSessionService(nil, store, newFakeRepository(), testLogger())

	username, claims, err := svc.Whoami()
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestSessionService_Whoami_NotAuthenticated(t *testing.T) {
	svc := NewSessionService(nil, session.NewStore(), newFakeRepository(), testLogger())

	_, _, err := svc.Whoami()
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}
