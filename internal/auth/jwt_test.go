package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueParse(t *testing.T) {
	tm := NewTokenManager("test-secret")

	tok, err := tm.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	uid, err := tm.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", uid)
}

func TestTokenManager_DistinctTokensPerIssue(t *testing.T) {
	tm := NewTokenManager("test-secret")
	t1, err := tm.Issue("user-1")
	require.NoError(t, err)
	t2, err := tm.Issue("user-1")
	require.NoError(t, err)
	require.NotEqual(t, t1, t2, "concurrent sessions must be individually revocable")
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tok, err := NewTokenManager("secret-a").Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Parse(tok)
	require.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret")
	_, err := tm.Parse("not.a.jwt")
	require.Error(t, err)
	_, err = tm.Parse("")
	require.Error(t, err)
}
