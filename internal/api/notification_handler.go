package api

import (
	"net/http"

	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/service"
)

// NotificationHandler exposes the reminder permission.
type NotificationHandler struct {
	reminders *service.ReminderService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(reminders *service.ReminderService) *NotificationHandler {
	return &NotificationHandler{reminders: reminders}
}

// Permission handles GET /api/notifications/permission.
func (h *NotificationHandler) Permission(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PermissionResponse{
		Permission: h.reminders.Permission(r.Context()),
	})
}

// RequestPermission handles POST /api/notifications/permission.
func (h *NotificationHandler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	permission, err := h.reminders.RequestPermission(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to request notification permission")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PermissionResponse{Permission: permission})
}
