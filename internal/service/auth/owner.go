package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/platform/logger"
)

// OwnerAuthenticator checks the owner password and issues access tokens.
type OwnerAuthenticator struct {
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
	logger       *slog.Logger
}

// NewOwnerAuthenticator creates an authenticator for cfg. The result is nil
// with a nil error when authentication is disabled.
func NewOwnerAuthenticator(cfg config.AuthConfig, log *slog.Logger) (*OwnerAuthenticator, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	tokens, err := NewJWTService(cfg)
	if err != nil {
		return nil, err
	}
	return newOwnerAuthenticator(cfg.PasswordHash, NewBcryptVerifier(), tokens, log), nil
}

func newOwnerAuthenticator(hash string, verifier PasswordVerifier, tokens JWTService, log *slog.Logger) *OwnerAuthenticator {
	if log == nil {
		log = slog.Default()
	}
	return &OwnerAuthenticator{
		passwordHash: hash,
		verifier:     verifier,
		tokens:       tokens,
		logger:       log.With("component", "owner_auth"),
	}
}

// Tokens returns the service used to issue and validate tokens.
func (a *OwnerAuthenticator) Tokens() JWTService {
	return a.tokens
}

// Login verifies password and returns a fresh access token with its expiry.
func (a *OwnerAuthenticator) Login(ctx context.Context, password string) (string, time.Time, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)

	if a.passwordHash == "" {
		return "", time.Time{}, ErrAuthDisabled
	}
	if err := a.verifier.Compare(a.passwordHash, password); err != nil {
		log.Warn("owner login failed")
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.GenerateToken(ctx)
	if err != nil {
		return "", time.Time{}, err
	}
	log.Info("owner logged in", "expires_at", expiresAt)
	return token, expiresAt, nil
}
