package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndParseAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := CreateAccessToken("alice", DefaultAccessTokenTTL)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	username, err := ParseAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestParseAccessTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := CreateAccessToken("alice", -1*time.Minute)
	assert.NoError(t, err)

	_, err = ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseAccessTokenTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := CreateAccessToken("alice", DefaultAccessTokenTTL)
	assert.NoError(t, err)

	// Altération du payload : la signature ne correspond plus
	parts := strings.Split(token, ".")
	parts[1] = parts[1][:len(parts[1])-2] + "xx"
	tampered := strings.Join(parts, ".")

	_, err = ParseAccessToken(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	token, err := CreateAccessToken("alice", DefaultAccessTokenTTL)
	assert.NoError(t, err)

	t.Setenv("JWT_SECRET", "autre-secret")
	_, err = ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	_, err := ParseAccessToken("pas.un.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
