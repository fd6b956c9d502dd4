package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := GenerateToken("user-1", "student", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "student", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("user-1", "student", []byte("secret-a"), time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, []byte("secret-b"))
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	tok, err := GenerateToken("user-1", "mentor", secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tok, secret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
