// Package handlers provides HTTP and websocket handlers for the weekly
// load simulation.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/dhasakgbb/physioSim-sub001/internal/modules/simulation"
)

const scrubReadTimeout = 5 * time.Minute

// Handler handles simulation HTTP requests
type Handler struct {
	service *simulation.Service
	log     zerolog.Logger
}

// NewHandler creates a new simulation handler
func NewHandler(service *simulation.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "simulation").Logger(),
	}
}

// HandleSimulate handles GET /api/simulation/{compoundId}?dose=&weeks=&ester=
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	compoundID := chi.URLParam(r, "compoundId")

	dose, err := strconv.ParseFloat(r.URL.Query().Get("dose"), 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "dose must be a number")
		return
	}
	weeks := 16
	if v := r.URL.Query().Get("weeks"); v != "" {
		weeks, err = strconv.Atoi(v)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "weeks must be an integer")
			return
		}
	}

	series, err := h.service.Simulate(compoundID, dose, r.URL.Query().Get("ester"), weeks)
	if err != nil {
		if strings.Contains(err.Error(), "unknown compound") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, series)
}

// scrubRequest is one client message on the stream: a week to inspect.
type scrubRequest struct {
	Week int `json:"week"`
}

// HandleStream handles GET /api/simulation/{compoundId}/stream.
// Websocket time-scrub protocol: the client sends {"week": n} messages
// and receives the week's state for the dose and ester fixed by the
// query parameters.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	compoundID := chi.URLParam(r, "compoundId")

	dose, err := strconv.ParseFloat(r.URL.Query().Get("dose"), 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "dose must be a number")
		return
	}
	ester := r.URL.Query().Get("ester")

	// Validate inputs before upgrading so bad requests fail as HTTP.
	if _, err := h.service.WeekAt(compoundID, dose, ester, 0); err != nil {
		if strings.Contains(err.Error(), "unknown compound") {
			h.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // same-host UI; CORS is enforced at the router
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	h.log.Debug().Str("compound", compoundID).Float64("dose", dose).Msg("Scrub stream opened")

	// The request context carries the router's timeout, which would cut the
	// stream off mid-session. Disconnects surface as read errors instead.
	streamCtx := context.Background()

	for {
		ctx, cancel := context.WithTimeout(streamCtx, scrubReadTimeout)
		var req scrubRequest
		err := wsjson.Read(ctx, conn, &req)
		cancel()
		if err != nil {
			// Normal closure or client gone; nothing to do.
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}

		state, err := h.service.WeekAt(compoundID, dose, ester, req.Week)
		if err != nil {
			writeErr := wsjson.Write(streamCtx, conn, map[string]string{"error": err.Error()})
			if writeErr != nil {
				return
			}
			continue
		}
		if err := wsjson.Write(streamCtx, conn, state); err != nil {
			return
		}
	}
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
