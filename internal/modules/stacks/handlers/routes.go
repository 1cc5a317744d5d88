package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all stack routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stacks", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Post("/evaluate", h.HandleEvaluate)
		r.Post("/receptor", h.HandleReceptor)
		r.Get("/snapshots/compare", h.HandleCompareSnapshots)
		r.Get("/snapshots/{snapshotId}", h.HandleGetSnapshot)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Post("/{id}/evaluate", h.HandleEvaluateStored)
		r.Post("/{id}/receptor", h.HandleReceptorStored)
		r.Get("/{id}/snapshots", h.HandleListSnapshots)
		r.Post("/{id}/snapshots", h.HandleTakeSnapshot)
	})
}
