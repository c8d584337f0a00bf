package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
)

func newCodec(t *testing.T, ttl time.Duration) *Codec {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	c, err := NewCodec(ttl, key)
	require.NoError(t, err)
	return c
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newCodec(t, time.Hour)

	tok, err := c.Encode(Session{UserID: "42", Name: "Asha", Admin: true})
	require.NoError(t, err)

	s, err := c.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", s.UserID)
	assert.Equal(t, "Asha", s.Name)
	assert.True(t, s.IsAdmin())
	assert.True(t, s.LoggedIn())
}

func TestCodec_Decode(t *testing.T) {
	t.Run("rejects tokens signed with another key", func(t *testing.T) {
		tok, err := newCodec(t, time.Hour).Encode(Session{UserID: "1"})
		require.NoError(t, err)

		_, err = newCodec(t, time.Hour).Decode(tok)
		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
	})

	t.Run("rejects garbage and empty tokens", func(t *testing.T) {
		c := newCodec(t, time.Hour)
		_, err := c.Decode("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)

		_, err = c.Decode("")
		assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
	})

	t.Run("accepts rotated keys", func(t *testing.T) {
		oldKey, err := GenerateKey()
		require.NoError(t, err)
		newKey, err := GenerateKey()
		require.NoError(t, err)

		oldCodec, err := NewCodec(time.Hour, oldKey)
		require.NoError(t, err)
		tok, err := oldCodec.Encode(Session{UserID: "7"})
		require.NoError(t, err)

		rotated, err := NewCodec(time.Hour, newKey, oldKey)
		require.NoError(t, err)
		s, err := rotated.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, "7", s.UserID)
	})
}

func TestNewCodec(t *testing.T) {
	_, err := NewCodec(time.Hour)
	assert.ErrorIs(t, err, apperrors.ErrSessionKeyMissing)

	_, err = NewCodec(time.Hour, "")
	assert.ErrorIs(t, err, apperrors.ErrSessionKeyMissing)

	_, err = NewCodec(time.Hour, "short")
	assert.Error(t, err)
}

func TestSessionHelpers(t *testing.T) {
	var s *Session
	assert.False(t, s.LoggedIn())
	assert.False(t, s.IsAdmin())
	assert.False(t, (&Session{}).LoggedIn())

	ctx := NewContext(context.Background(), &Session{UserID: "9"})
	assert.Equal(t, "9", FromContext(ctx).UserID)
	assert.Nil(t, FromContext(context.Background()))
}
