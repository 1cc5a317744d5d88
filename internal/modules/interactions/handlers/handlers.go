// Package handlers provides HTTP handlers for interaction matrix queries.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/interactions"
)

// Handler handles interaction HTTP requests
type Handler struct {
	repo    *interactions.Repository
	catalog *catalog.Repository
	log     zerolog.Logger
}

// NewHandler creates a new interactions handler
func NewHandler(repo *interactions.Repository, catalogRepo *catalog.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo:    repo,
		catalog: catalogRepo,
		log:     log.With().Str("handler", "interactions").Logger(),
	}
}

// HandleList handles GET /api/interactions
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	records := h.repo.All()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"interactions": records,
		"count":        len(records),
	})
}

// HandlePair handles GET /api/interactions/pair?a={id}&b={id}.
// Pairs without a curated record report the neutral compatible rating;
// asking about a compound against itself is rejected.
func (h *Handler) HandlePair(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		h.writeError(w, http.StatusBadRequest, "query parameters 'a' and 'b' are required")
		return
	}
	if a == b {
		h.writeError(w, http.StatusBadRequest, "cannot pair a compound with itself")
		return
	}
	for _, id := range []string{a, b} {
		if _, ok := h.catalog.Compound(id); !ok {
			h.writeError(w, http.StatusNotFound, "unknown compound: "+id)
			return
		}
	}

	pairKey := domain.PairKey(a, b)
	rec, curated := h.repo.Lookup(pairKey)
	if !curated {
		rec = domain.InteractionRecord{
			CompoundA: a,
			CompoundB: b,
			Rating:    domain.RatingCompatible,
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pair_key":      pairKey,
		"record":        rec,
		"curated":       curated,
		"heatmap_value": rec.Rating.HeatmapValue(),
	})
}

// HandleHeatmap handles GET /api/interactions/heatmap.
// Returns the full compound-by-compound grid on the display scale; the
// diagonal is null.
func (h *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	compounds := h.catalog.All()

	ids := make([]string, 0, len(compounds))
	for _, c := range compounds {
		ids = append(ids, c.ID)
	}

	grid := make([][]interface{}, len(ids))
	for i, a := range ids {
		row := make([]interface{}, len(ids))
		for j, b := range ids {
			if a == b {
				row[j] = nil
				continue
			}
			rating := domain.RatingCompatible
			if rec, ok := h.repo.Lookup(domain.PairKey(a, b)); ok {
				rating = rec.Rating
			}
			row[j] = rating.HeatmapValue()
		}
		grid[i] = row
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"compounds": ids,
		"grid":      grid,
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
