// Package handlers provides HTTP handlers for stack management,
// evaluation and snapshots.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/stacks"
)

// Handler handles stack HTTP requests
type Handler struct {
	repo    *stacks.Repository
	service *stacks.Service
	log     zerolog.Logger
}

// NewHandler creates a new stacks handler
func NewHandler(repo *stacks.Repository, service *stacks.Service, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		service: service,
		log:     log.With().Str("handler", "stacks").Logger(),
	}
}

type stackRequest struct {
	Name      string              `json:"name"`
	ProfileID string              `json:"profile_id"`
	Entries   []domain.StackEntry `json:"entries"`
}

type evaluateRequest struct {
	Entries []domain.StackEntry `json:"entries"`
	Profile *domain.Profile     `json:"profile,omitempty"`
}

// HandleList handles GET /api/stacks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list stacks")
		h.writeError(w, http.StatusInternalServerError, "failed to list stacks")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"stacks": list,
		"count":  len(list),
	})
}

// HandleGet handles GET /api/stacks/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	stack, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, stack)
}

// HandleCreate handles POST /api/stacks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req stackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stack, err := h.repo.Create(strings.TrimSpace(req.Name), req.ProfileID, req.Entries)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, stack)
}

// HandleUpdate handles PUT /api/stacks/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req stackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stack, err := h.repo.Update(chi.URLParam(r, "id"), strings.TrimSpace(req.Name), req.ProfileID, req.Entries)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, stack)
}

// HandleDelete handles DELETE /api/stacks/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleEvaluate handles POST /api/stacks/evaluate.
// Evaluates ad-hoc entries without persisting anything; a missing profile
// means the neutral default.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := domain.DefaultProfile()
	if req.Profile != nil {
		profile = *req.Profile
	}

	result, err := h.service.Evaluate(req.Entries, profile)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if result == nil {
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"result": nil})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"result": result})
}

// HandleEvaluateStored handles POST /api/stacks/{id}/evaluate
func (h *Handler) HandleEvaluateStored(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, profile, err := h.service.EvaluateStored(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"stack_id": id,
		"profile":  profile,
		"result":   result,
	})
}

// HandleReceptor handles POST /api/stacks/receptor.
// Runs the competitive displacement model over ad-hoc entries.
func (h *Handler) HandleReceptor(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state := h.service.ReceptorState(req.Entries)
	h.writeJSON(w, http.StatusOK, state)
}

// HandleReceptorStored handles POST /api/stacks/{id}/receptor
func (h *Handler) HandleReceptorStored(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.ReceptorStateStored(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, state)
}

// HandleTakeSnapshot handles POST /api/stacks/{id}/snapshots
func (h *Handler) HandleTakeSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.TakeSnapshot(chi.URLParam(r, "id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, snap)
}

// HandleListSnapshots handles GET /api/stacks/{id}/snapshots
func (h *Handler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.repo.ListSnapshots(chi.URLParam(r, "id"))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list snapshots")
		h.writeError(w, http.StatusInternalServerError, "failed to list snapshots")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snaps,
		"count":     len(snaps),
	})
}

// HandleGetSnapshot handles GET /api/stacks/snapshots/{snapshotId}
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.GetSnapshot(chi.URLParam(r, "snapshotId"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// HandleCompareSnapshots handles GET /api/stacks/snapshots/compare?base={id}&other={id}
func (h *Handler) HandleCompareSnapshots(w http.ResponseWriter, r *http.Request) {
	baseID := r.URL.Query().Get("base")
	otherID := r.URL.Query().Get("other")
	if baseID == "" || otherID == "" {
		h.writeError(w, http.StatusBadRequest, "query parameters 'base' and 'other' are required")
		return
	}

	diff, err := h.service.CompareSnapshots(baseID, otherID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, diff)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
