// Package handlers provides HTTP handlers for sweet-spot queries.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/sweetspot"
)

// Handler handles sweet-spot HTTP requests
type Handler struct {
	service *sweetspot.Service
	log     zerolog.Logger
}

// NewHandler creates a new sweet-spot handler
func NewHandler(service *sweetspot.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "sweetspot").Logger(),
	}
}

// HandleFind handles POST /api/sweetspot/{compoundId}.
// An empty body sweeps with the neutral default profile.
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	compoundID := chi.URLParam(r, "compoundId")

	profile := domain.DefaultProfile()
	if r.ContentLength > 0 {
		var req struct {
			Profile domain.Profile `json:"profile"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		profile = req.Profile
	}

	result, err := h.service.Find(compoundID, profile)
	if err != nil {
		if strings.Contains(err.Error(), "unknown compound") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, result)
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
