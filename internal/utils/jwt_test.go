package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := CreateSessionToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestSessionTokenMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := CreateSessionToken("admin")
	assert.Error(t, err)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-a")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := CreateSessionToken("admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenSecretRotation(t *testing.T) {
	// Un token émis avec l'ancien secret reste valide tant que
	// JWT_SECRET_PREVIOUS le porte
	t.Setenv("JWT_SECRET", "old-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	token, err := CreateSessionToken("admin")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "new-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "old-secret")

	username, err := VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestSessionTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifySessionToken("pas-un-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = VerifySessionToken("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	claims := jwt.MapClaims{
		"username": "admin",
		"iat":      time.Now().Add(-8 * 24 * time.Hour).Unix(),
		"exp":      time.Now().Add(-24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionTokenWithoutExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_SECRET_PREVIOUS", "")

	claims := jwt.MapClaims{"username": "admin"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
