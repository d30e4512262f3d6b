package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/moments-api/internal/api/shared"
	"github.com/phrazzld/moments-api/internal/domain"
	"github.com/phrazzld/moments-api/internal/service"
)

// Views accepted by the list endpoint.
const (
	viewActive  = "active"
	viewHistory = "history"
	viewAll     = "all"
)

// MomentHandler handles moment-related API requests. Reads go to the
// repository; every change goes through the workflow.
type MomentHandler struct {
	repo     *service.MomentRepository
	workflow *service.Workflow
}

// NewMomentHandler creates a new MomentHandler.
func NewMomentHandler(repo *service.MomentRepository, workflow *service.Workflow) *MomentHandler {
	return &MomentHandler{repo: repo, workflow: workflow}
}

// List handles GET /api/moments. The view query parameter selects active
// (default), history or all.
func (h *MomentHandler) List(w http.ResponseWriter, r *http.Request) {
	var moments []domain.Moment
	switch view := r.URL.Query().Get("view"); view {
	case "", viewActive:
		moments = h.repo.QueryActive()
	case viewHistory:
		moments = h.repo.QueryHistory()
	case viewAll:
		moments = h.repo.Snapshot()
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid view: must be active, history or all")
		return
	}

	now := h.repo.Now()
	selected := h.selectedID()
	out := make([]MomentResponse, 0, len(moments))
	for _, m := range moments {
		out = append(out, newMomentResponse(m, now, selected))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// Create handles POST /api/moments.
func (h *MomentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMomentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusCreated, service.CreateMoment{Input: req.Input()})
}

// Get handles GET /api/moments/{id}.
func (h *MomentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	m, err := h.repo.Get(id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.respondMoment(w, r, http.StatusOK, m)
}

// Update handles PUT /api/moments/{id}.
func (h *MomentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	var req UpdateMomentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.dispatch(w, r, http.StatusOK, req.command(id))
}

// Delete handles DELETE /api/moments/{id}.
func (h *MomentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	if _, err := h.workflow.Dispatch(r.Context(), service.DeleteMoment{MomentID: id}); err != nil {
		HandleAPIError(w, r, err, "Failed to delete moment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTask handles POST /api/moments/{id}/tasks.
func (h *MomentHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	var req AddTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusCreated, service.AddTask{MomentID: id, Text: req.Text})
}

// ToggleTask handles POST /api/moments/{id}/tasks/{taskID}/toggle.
func (h *MomentHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	taskID, err := getPathUUID(r, "taskID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.dispatch(w, r, http.StatusOK, service.ToggleTask{MomentID: id, TaskID: taskID})
}

// LogEmotion handles POST /api/moments/{id}/emotions.
func (h *MomentHandler) LogEmotion(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	var req LogEmotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusCreated, service.LogEmotion{MomentID: id, Emotion: req.Emotion, Note: req.Note})
}

// Complete handles POST /api/moments/{id}/complete.
func (h *MomentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	var req CompleteRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.CompleteMoment{
		MomentID:   id,
		Rating:     req.Rating,
		Lessons:    req.Lessons,
		Repeatable: req.Repeatable,
	})
}

// Archive handles POST /api/moments/{id}/archive.
func (h *MomentHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.ArchiveMoment{MomentID: id})
}

// Postpone handles POST /api/moments/{id}/postpone.
func (h *MomentHandler) Postpone(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.PostponeMoment{MomentID: id})
}

// Select handles POST /api/moments/{id}/select.
func (h *MomentHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, ok := momentIDOrError(w, r)
	if !ok {
		return
	}
	h.dispatch(w, r, http.StatusOK, service.SelectMoment{MomentID: id})
}

// Selection handles GET /api/selection.
func (h *MomentHandler) Selection(w http.ResponseWriter, r *http.Request) {
	resp := SelectionResponse{}
	if m, ok := h.repo.Selected(); ok {
		view := newMomentResponse(*m, h.repo.Now(), m.ID)
		resp.Selected = &view
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ClearSelection handles DELETE /api/selection.
func (h *MomentHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	if _, err := h.workflow.Dispatch(r.Context(), service.SelectMoment{MomentID: uuid.Nil}); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MomentHandler) dispatch(w http.ResponseWriter, r *http.Request, status int, cmd service.Command) {
	m, err := h.workflow.Dispatch(r.Context(), cmd)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to save moment")
		return
	}
	h.respondMoment(w, r, status, m)
}

func (h *MomentHandler) respondMoment(w http.ResponseWriter, r *http.Request, status int, m *domain.Moment) {
	shared.RespondWithJSON(w, r, status, newMomentResponse(*m, h.repo.Now(), h.selectedID()))
}

func (h *MomentHandler) selectedID() uuid.UUID {
	if m, ok := h.repo.Selected(); ok {
		return m.ID
	}
	return uuid.Nil
}
