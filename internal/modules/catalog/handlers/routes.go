package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all catalog routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/compounds", h.HandleList)
		r.Get("/compounds/{id}", h.HandleGet)
		r.Get("/compounds/{id}/curve", h.HandleEvaluateCurve)
	})
}
