package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACService_RoundTrip(t *testing.T) {
	s := NewHMACService("secret", time.Hour, "skillswap")

	tok, err := s.GenerateSessionToken(Identity{UserID: "u1", Username: "BoldOtter", Email: "a@x.io"})
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "BoldOtter", c.Username)
	assert.Equal(t, "a@x.io", c.Email)
	assert.Equal(t, time.Hour, c.ExpiresAt.Sub(c.IssuedAt.Time))
}

func TestHMACService_Expired(t *testing.T) {
	s := NewHMACService("secret", time.Hour, "skillswap")
	start := time.Now()
	s.now = func() time.Time { return start }

	tok, err := s.GenerateSessionToken(Identity{UserID: "u1"})
	require.NoError(t, err)

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", time.Hour, "").GenerateSessionToken(Identity{UserID: "u1"})
	require.NoError(t, err)

	_, err = NewHMACService("b", time.Hour, "").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = NewHMACService("b", time.Hour, "").ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_RequiresUserID(t *testing.T) {
	_, err := NewHMACService("a", time.Hour, "").GenerateSessionToken(Identity{})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
