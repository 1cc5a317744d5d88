package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all interaction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/interactions", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Get("/pair", h.HandlePair)
		r.Get("/heatmap", h.HandleHeatmap)
	})
}
