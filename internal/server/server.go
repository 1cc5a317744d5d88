// Package server provides the HTTP server and routing for physioSim.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/config"
	"github.com/dhasakgbb/physioSim-sub001/internal/database"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog"
	cataloghandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog/handlers"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/interactions"
	interactionhandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/interactions/handlers"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles"
	profilehandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles/handlers"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/simulation"
	simulationhandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/simulation/handlers"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/stacks"
	stackhandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/stacks/handlers"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/sweetspot"
	sweetspothandlers "github.com/dhasakgbb/physioSim-sub001/internal/modules/sweetspot/handlers"
)

// Config holds server configuration
type Config struct {
	Log        zerolog.Logger
	Config     *config.Config
	CatalogDB  *database.DB
	ProfilesDB *database.DB
	StacksDB   *database.DB

	CatalogRepo     *catalog.Repository
	InteractionRepo *interactions.Repository
	ProfileRepo     *profiles.Repository
	StackRepo       *stacks.Repository
	StackService    *stacks.Service
	SweetSpot       *sweetspot.Service
	Simulation      *simulation.Service
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	deps           Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg.Config,
		deps:   cfg,
	}

	s.systemHandlers = NewSystemHandlers(
		cfg.Log,
		cfg.Config.DataDir,
		cfg.CatalogDB,
		cfg.ProfilesDB,
		cfg.StacksDB,
		cfg.CatalogRepo,
		cfg.InteractionRepo,
	)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check (outside the /api tree)
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// System monitoring
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
			r.Get("/disk", s.systemHandlers.HandleDiskUsage)
		})

		// Compound catalog
		catalogHandler := cataloghandlers.NewHandler(s.deps.CatalogRepo, s.log)
		catalogHandler.RegisterRoutes(r)

		// Pairwise interaction matrix
		interactionHandler := interactionhandlers.NewHandler(s.deps.InteractionRepo, s.deps.CatalogRepo, s.log)
		interactionHandler.RegisterRoutes(r)

		// User profiles
		profileHandler := profilehandlers.NewHandler(s.deps.ProfileRepo, s.log)
		profileHandler.RegisterRoutes(r)

		// Stacks, evaluation and snapshots
		stackHandler := stackhandlers.NewHandler(s.deps.StackRepo, s.deps.StackService, s.log)
		stackHandler.RegisterRoutes(r)

		// Dose range finder
		sweetSpotHandler := sweetspothandlers.NewHandler(s.deps.SweetSpot, s.log)
		sweetSpotHandler.RegisterRoutes(r)

		// Weekly load simulation
		simulationHandler := simulationhandlers.NewHandler(s.deps.Simulation, s.log)
		simulationHandler.RegisterRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
