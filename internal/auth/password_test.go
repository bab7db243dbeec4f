package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234567")
	require.NoError(t, err)
	require.NotEqual(t, "1234567", hash)

	require.NoError(t, VerifyPassword("1234567", hash))
	require.Error(t, VerifyPassword("wrongpw", hash))
}

func TestHashPassword_Salted(t *testing.T) {
	h1, err := HashPassword("1234567")
	require.NoError(t, err)
	h2, err := HashPassword("1234567")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
