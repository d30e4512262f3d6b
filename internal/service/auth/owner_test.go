package auth

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestOwnerAuthenticatorLogin(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens := newTestJWTService(t, testSecret, time.Hour, fixedTime)
	a := newOwnerAuthenticator(hash, NewBcryptVerifier(), tokens, nil)

	token, expiresAt, err := a.Login(context.Background(), "correct horse")
	require.NoError(t, err)
	assert.Equal(t, fixedTime.Add(time.Hour), expiresAt)

	claims, err := a.Tokens().ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, OwnerSubject, claims.Subject)

	_, _, err = a.Login(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewOwnerAuthenticator(t *testing.T) {
	t.Parallel()

	a, err := NewOwnerAuthenticator(config.AuthConfig{TokenLifetimeMinutes: 60}, nil)
	require.NoError(t, err)
	assert.Nil(t, a, "no password hash disables auth")

	_, err = NewOwnerAuthenticator(config.AuthConfig{
		PasswordHash:         "$2a$10$abcdefghijklmnopqrstuu",
		JWTSecret:            "short",
		TokenLifetimeMinutes: 60,
	}, nil)
	assert.Error(t, err)

	a, err = NewOwnerAuthenticator(config.AuthConfig{
		PasswordHash:         "$2a$10$abcdefghijklmnopqrstuu",
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestHashPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, NewBcryptVerifier().Compare(hash, "secret"))
	assert.Error(t, NewBcryptVerifier().Compare(hash, "other"))
}
