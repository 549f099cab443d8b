package util

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("asha", "secret")
	require.NoError(t, err)

	username, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "asha", username)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("asha", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "secret")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(r))

	r.Header.Set("Authorization", "bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(r))

	r.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "abc123")
	assert.Empty(t, ExtractToken(r))
}
