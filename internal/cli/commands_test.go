package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/session"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestKeyCmd(t *testing.T) {
	key, err := run(t, "key")
	require.NoError(t, err)

	_, err = session.NewCodec(0, key)
	assert.NoError(t, err, "generated key must be usable")
}

func TestIssueAndDecode(t *testing.T) {
	key, err := session.GenerateKey()
	require.NoError(t, err)

	token, err := run(t, "issue", "--key", key, "--user", "42", "--name", "Asha", "--admin")
	require.NoError(t, err)

	codec, err := session.NewCodec(0, key)
	require.NoError(t, err)
	sess, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, &session.Session{UserID: "42", Name: "Asha", Admin: true}, sess)

	out, err := run(t, "decode", "--key", key, token)
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": "42"`)
	assert.Contains(t, out, `"admin": true`)
}

func TestIssueCmd_Errors(t *testing.T) {
	t.Setenv("SESSION_KEY", "")

	_, err := run(t, "issue", "--user", "42")
	assert.ErrorIs(t, err, apperrors.ErrSessionKeyMissing)

	key, err := session.GenerateKey()
	require.NoError(t, err)
	_, err = run(t, "issue", "--key", key)
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserID)
}

func TestIssueCmd_ReadsKeyFromEnvironment(t *testing.T) {
	key, err := session.GenerateKey()
	require.NoError(t, err)
	t.Setenv("SESSION_KEY", key)

	token, err := run(t, "issue", "--user", "7")
	require.NoError(t, err)

	out, err := run(t, "decode", token)
	require.NoError(t, err)
	assert.Contains(t, out, `"userId": "7"`)
}

func TestDecodeCmd_RejectsForeignTokens(t *testing.T) {
	keyA, err := session.GenerateKey()
	require.NoError(t, err)
	keyB, err := session.GenerateKey()
	require.NoError(t, err)

	token, err := run(t, "issue", "--key", keyA, "--user", "1")
	require.NoError(t, err)

	_, err = run(t, "decode", "--key", keyB, token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSession)
}
