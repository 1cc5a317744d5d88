// Package handlers provides HTTP handlers for compound catalog lookups.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog"
)

// Handler handles catalog HTTP requests
type Handler struct {
	repo *catalog.Repository
	log  zerolog.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(repo *catalog.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "catalog").Logger(),
	}
}

// HandleList handles GET /api/catalog/compounds
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	compounds := h.repo.All()

	summaries := make([]map[string]interface{}, 0, len(compounds))
	for _, c := range compounds {
		summaries = append(summaries, map[string]interface{}{
			"id":                  c.ID,
			"name":                c.Name,
			"administration_type": c.AdministrationType,
			"aromatizing":         c.Aromatizing,
			"neuro_sensitive":     c.NeuroSensitive,
			"shbg_sensitive":      c.SHBGSensitive,
			"max_dose":            c.BenefitCurve.MaxDose(),
			"default_ester":       c.DefaultEster,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"compounds": summaries,
		"count":     len(summaries),
	})
}

// HandleGet handles GET /api/catalog/compounds/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	compound, ok := h.repo.Compound(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "compound not found")
		return
	}
	h.writeJSON(w, http.StatusOK, compound)
}

// HandleEvaluateCurve handles GET /api/catalog/compounds/{id}/curve.
// Query parameters: type=benefit|risk (default benefit), dose (required).
// Doses past the sampled range return the final sample's value flat.
func (h *Handler) HandleEvaluateCurve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	compound, ok := h.repo.Compound(id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "compound not found")
		return
	}

	curveType := domain.CurveBenefit
	if t := r.URL.Query().Get("type"); t != "" {
		curveType = domain.CurveType(t)
		if curveType != domain.CurveBenefit && curveType != domain.CurveRisk {
			h.writeError(w, http.StatusBadRequest, "type must be 'benefit' or 'risk'")
			return
		}
	}

	dose, err := strconv.ParseFloat(r.URL.Query().Get("dose"), 64)
	if err != nil || dose < 0 {
		h.writeError(w, http.StatusBadRequest, "dose must be a non-negative number")
		return
	}

	curve := compound.CurveFor(curveType)
	sample, err := evaluation.EvaluateCurve(curve, dose)
	if err != nil {
		h.log.Error().Err(err).Str("compound", id).Msg("Curve evaluation failed")
		h.writeError(w, http.StatusInternalServerError, "curve evaluation failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"compound_id":      id,
		"curve_type":       curveType,
		"dose":             dose,
		"value":            sample.Value,
		"confidence_width": sample.ConfidenceWidth,
		"beyond_evidence":  dose > curve.MaxDose(),
	})
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
