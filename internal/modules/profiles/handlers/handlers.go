// Package handlers provides HTTP handlers for profile management.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles"
)

// Handler handles profile HTTP requests
type Handler struct {
	repo *profiles.Repository
	log  zerolog.Logger
}

// NewHandler creates a new profiles handler
func NewHandler(repo *profiles.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "profiles").Logger(),
	}
}

type profileRequest struct {
	Name    string         `json:"name"`
	Profile domain.Profile `json:"profile"`
}

// HandleList handles GET /api/profiles
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list profiles")
		h.writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": list,
		"count":    len(list),
	})
}

// HandleGet handles GET /api/profiles/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	stored, err := h.repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, stored)
}

// HandleGetDefault handles GET /api/profiles/default.
// Returns the neutral responder template used for anonymous evaluations.
func (h *Handler) HandleGetDefault(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Default",
		"profile": domain.DefaultProfile(),
	})
}

// HandleCreate handles POST /api/profiles
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.repo.Create(strings.TrimSpace(req.Name), req.Profile)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, stored)
}

// HandleUpdate handles PUT /api/profiles/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	stored, err := h.repo.Update(chi.URLParam(r, "id"), strings.TrimSpace(req.Name), req.Profile)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, stored)
}

// HandleDelete handles DELETE /api/profiles/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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
