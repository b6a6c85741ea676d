// ABOUTME: Tests for unverified JWT claim inspection

package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestInspect_ExtractsClaims(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	s := signedToken(t, jwt.MapClaims{
		"sub": "ada@example.com",
		"iat": now.Unix(),
		"exp": now.Add(30 * time.Minute).Unix(),
	})

	info, err := Inspect(s)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", info.Subject)
	assert.Equal(t, now.Unix(), info.IssuedAt.Unix())
	assert.False(t, info.Expired())
}

func TestInspect_ExpiredToken(t *testing.T) {
	s := signedToken(t, jwt.MapClaims{
		"sub": "ada@example.com",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	info, err := Inspect(s)
	require.NoError(t, err)
	assert.True(t, info.Expired())
}

func TestInspect_NoExpiryNeverExpires(t *testing.T) {
	s := signedToken(t, jwt.MapClaims{"sub": "ada@example.com"})

	info, err := Inspect(s)
	require.NoError(t, err)
	assert.False(t, info.Expired())
}

func TestInspect_NotAJWT(t *testing.T) {
	_, err := Inspect("opaque-session-token")
	assert.ErrorIs(t, err, ErrNotJWT)
}
