package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, sub, role string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore_AuthHeaders_NotAuthenticated(t *testing.T) {
	s := NewStore()

	_, err := s.AuthHeaders()
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.False(t, s.IsAuthenticated())
}

func TestStore_AuthHeaders_BearerPair(t *testing.T) {
	s := NewStore()
	s.Set(Session{AccessToken: "at", RefreshToken: "rt", Username: "admin"})

	h, err := s.AuthHeaders()
	require.NoError(t, err)
	assert.Equal(t, "Bearer at", h[AccessHeaderName])
	assert.Equal(t, "Bearer rt", h[RefreshHeaderName])
}

func TestStore_AuthHeaders_SnapshotSurvivesRotation(t *testing.T) {
	s := NewStore()
	s.Set(Session{AccessToken: "at1", RefreshToken: "rt1"})

	h, err := s.AuthHeaders()
	require.NoError(t, err)

	// rotate tokens after headers were built
	s.Set(Session{AccessToken: "at2", RefreshToken: "rt2"})

	assert.Equal(t, "Bearer at1", h[AccessHeaderName])
	assert.Equal(t, "Bearer rt1", h[RefreshHeaderName])
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Set(Session{AccessToken: "at", RefreshToken: "rt"})
	require.True(t, s.IsAuthenticated())

	s.Clear()
	assert.False(t, s.IsAuthenticated())
	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signToken(t, "admin-1", "super_admin", exp)

	c, err := ParseClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", c.Subject)
	assert.Equal(t, "super_admin", c.Role)
	assert.Equal(t, exp.Unix(), c.ExpiresAt.Unix())
	assert.False(t, c.Expired(time.Now()))
	assert.True(t, c.Expired(exp.Add(time.Second)))
}

func TestParseClaims_Garbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	require.Error(t, err)
}
