// Package server provides the HTTP server and routing for physioSim.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/dhasakgbb/physioSim-sub001/internal/database"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	databases := map[string]string{}
	for _, db := range []*database.DB{s.deps.CatalogDB, s.deps.ProfilesDB, s.deps.StacksDB} {
		if db == nil {
			continue
		}
		if err := db.HealthCheck(r.Context()); err != nil {
			s.log.Error().Err(err).Str("database", db.Name()).Msg("Health check failed")
			databases[db.Name()] = "unhealthy"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		databases[db.Name()] = "healthy"
	}

	response := map[string]interface{}{
		"status":    status,
		"version":   "1.0.0",
		"service":   "physiosim",
		"databases": databases,
	}

	s.writeJSON(w, code, response)
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
