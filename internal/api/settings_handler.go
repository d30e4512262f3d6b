package api

import (
	"net/http"

	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/service"
)

// SettingsHandler reads and replaces the owner's settings.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.settings.Get())
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := h.settings.Update(r.Context(), domain.Settings{
		Theme:    req.Theme,
		Language: req.Language,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save settings")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, saved)
}
