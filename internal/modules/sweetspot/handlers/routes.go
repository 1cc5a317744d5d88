package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all sweet-spot routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sweetspot", func(r chi.Router) {
		r.Post("/{compoundId}", h.HandleFind)
	})
}
