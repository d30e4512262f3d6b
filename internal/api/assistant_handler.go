package api

import (
	"net/http"

	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/service"
)

// AssistantHandler exposes the planning assistant. Drafts are returned to
// the client and never stored; the client submits them through the create
// endpoint.
type AssistantHandler struct {
	planner *service.Planner
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(planner *service.Planner) *AssistantHandler {
	return &AssistantHandler{planner: planner}
}

// Plan handles POST /api/assistant/plan.
func (h *AssistantHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	draft, err := h.planner.DraftPlan(r.Context(), req.Goal)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, draft)
}

// Insight handles POST /api/moments/{id}/insight.
func (h *AssistantHandler) Insight(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}

	insight, err := h.planner.Insight(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, InsightResponse{MomentID: id, Insight: insight})
}
