// Package session verifies the session tokens issued by the auth service.
//
// A token is a fernet token over the JSON encoding of a Session. The viewer
// and admin navigation receive the decoded Session explicitly; nothing reads
// browser storage.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
)

// Session identifies the logged-in user of a request.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
}

// LoggedIn reports whether s belongs to an identified user. Safe on nil.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != ""
}

// IsAdmin reports whether s carries the admin flag. Safe on nil.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Admin
}

// Codec signs and verifies session tokens.
type Codec struct {
	keys []*fernet.Key
	ttl  time.Duration
}

// NewCodec creates a codec from one or more base64 fernet keys. The first key
// signs new tokens; all keys verify. A ttl <= 0 disables expiry.
func NewCodec(ttl time.Duration, encodedKeys ...string) (*Codec, error) {
	if len(encodedKeys) == 0 || encodedKeys[0] == "" {
		return nil, apperrors.ErrSessionKeyMissing
	}

	keys, err := fernet.DecodeKeys(encodedKeys...)
	if err != nil {
		return nil, fmt.Errorf("decode session keys: %w", err)
	}

	if ttl <= 0 {
		ttl = -1
	}
	return &Codec{keys: keys, ttl: ttl}, nil
}

// GenerateKey returns a new random base64 fernet key.
func GenerateKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// Encode signs s into a token.
func (c *Codec) Encode(s Session) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	tok, err := fernet.EncryptAndSign(payload, c.keys[0])
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return string(tok), nil
}

// Decode verifies token and returns its session.
func (c *Codec) Decode(token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidSession
	}

	payload := fernet.VerifyAndDecrypt([]byte(token), c.ttl, c.keys)
	if payload == nil {
		return nil, apperrors.ErrInvalidSession
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidSession, err)
	}
	return &s, nil
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
