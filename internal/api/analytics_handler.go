package api

import (
	"net/http"

	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/service"
)

// AnalyticsHandler serves the derived dashboard views.
type AnalyticsHandler struct {
	dashboard *service.Dashboard
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(dashboard *service.Dashboard) *AnalyticsHandler {
	return &AnalyticsHandler{dashboard: dashboard}
}

// Summary handles GET /api/analytics/summary.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.dashboard.Summary())
}
