package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/moments-api/internal/api/middleware"
	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/config"
	"github.com/phrazzld/moments-api/internal/mocks"
	"github.com/phrazzld/moments-api/internal/platform/logger"
	"github.com/phrazzld/moments-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const ownerPassword = "correct horse battery staple"

func newOwner(t *testing.T) *auth.OwnerAuthenticator {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	hash, err := auth.HashPassword(ownerPassword, bcrypt.MinCost)
	require.NoError(t, err)

	owner, err := auth.NewOwnerAuthenticator(config.AuthConfig{
		JWTSecret:            "test-secret-that-is-long-enough-for-testing",
		PasswordHash:         hash,
		TokenLifetimeMinutes: 60,
	}, log)
	require.NoError(t, err)
	require.NotNil(t, owner)
	return owner
}

func login(t *testing.T, h *AuthHandler, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(LoginRequest{Password: password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	t.Parallel()
	owner := newOwner(t)
	h := NewAuthHandler(owner)

	t.Run("valid password", func(t *testing.T) {
		t.Parallel()
		rr := login(t, h, ownerPassword)

		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode[AuthResponse](t, rr)
		assert.NotEmpty(t, resp.AccessToken)
		expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := owner.Tokens().ValidateToken(t.Context(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, auth.OwnerSubject, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		rr := login(t, h, "nope")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rr))
	})

	t.Run("missing password", func(t *testing.T) {
		t.Parallel()
		rr := login(t, h, "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("auth disabled", func(t *testing.T) {
		t.Parallel()
		rr := login(t, NewAuthHandler(nil), ownerPassword)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestAuthenticateMiddleware(t *testing.T) {
	t.Parallel()
	owner := newOwner(t)
	token, _, err := owner.Login(t.Context(), ownerPassword)
	require.NoError(t, err)

	var subject string
	protected := middleware.NewAuthMiddleware(owner.Tokens()).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, _ = shared.GetSubject(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/moments", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)
		assert.Equal(t, tc.status, rr.Code, tc.name)
	}
	assert.Equal(t, auth.OwnerSubject, subject)
}

func TestAuthenticateMiddleware_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"expired", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"not yet valid", auth.ErrTokenNotYetValid, http.StatusUnauthorized, "Invalid token"},
		{"invalid", auth.ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
		{"unexpected", errors.New("keystore offline"), http.StatusInternalServerError, "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			jwtService := &mocks.MockJWTService{
				ValidateTokenFn: func(_ context.Context, token string) (*auth.Claims, error) {
					assert.Equal(t, "abc", token)
					return nil, tc.err
				},
			}
			reached := false
			protected := middleware.NewAuthMiddleware(jwtService).Authenticate(
				http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true }))

			req := httptest.NewRequest(http.MethodGet, "/api/moments", nil)
			req.Header.Set("Authorization", "Bearer abc")
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)

			assert.False(t, reached)
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.message, errorMessage(t, rr))
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()
	log, buf := logger.NewTestLogger(t)

	var traceID string
	handler := middleware.NewTraceMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		shared.RespondWithError(w, r, http.StatusTeapot, "short and stout")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, traceID)
	assert.Equal(t, http.StatusTeapot, rr.Code)
	resp := decode[shared.ErrorResponse](t, rr)
	assert.Equal(t, traceID, resp.TraceID)
	assert.Contains(t, buf.String(), traceID)
}
