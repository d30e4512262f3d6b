package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	owner *auth.OwnerAuthenticator
}

// NewAuthHandler creates a new AuthHandler. A nil authenticator answers every
// login with 503.
func NewAuthHandler(owner *auth.OwnerAuthenticator) *AuthHandler {
	return &AuthHandler{owner: owner}
}

// Login handles the /api/auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if h.owner == nil {
		HandleAPIError(w, r, auth.ErrAuthDisabled, "")
		return
	}

	token, expiresAt, err := h.owner.Login(r.Context(), req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}
