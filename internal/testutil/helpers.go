package testutil

import (
	"testing"
	"time"

	"github.com/kritikayadav/screener-backend/internal/session"
)

// NewTestCodec returns a session codec with a freshly generated key.
func NewTestCodec(t *testing.T) *session.Codec {
	t.Helper()

	key, err := session.GenerateKey()
	if err != nil {
		t.Fatalf("failed to generate session key: %v", err)
	}
	codec, err := session.NewCodec(time.Hour, key)
	if err != nil {
		t.Fatalf("failed to create session codec: %v", err)
	}
	return codec
}

// SessionToken signs sess with codec.
func SessionToken(t *testing.T, codec *session.Codec, sess session.Session) string {
	t.Helper()

	tok, err := codec.Encode(sess)
	if err != nil {
		t.Fatalf("failed to encode session: %v", err)
	}
	return tok
}

// UserSession is a regular logged-in user.
func UserSession(userID string) session.Session {
	return session.Session{UserID: userID, Name: "Test User"}
}

// AdminSession is a logged-in admin.
func AdminSession() session.Session {
	return session.Session{UserID: "admin-1", Name: "Admin", Admin: true}
}
