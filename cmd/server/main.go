// Package main is the entry point for the physioSim dose-response service.
// The service models compound dose-response curves, personalizes them per
// user profile, evaluates multi-compound stacks (synergy, receptor
// saturation, competitive displacement) and serves the results over HTTP.
//
// The application follows a modular layout:
// - Domain types are pure (no infrastructure dependencies)
// - Repository pattern for data access
// - Service layer for evaluation logic
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dhasakgbb/physioSim-sub001/internal/config"
	"github.com/dhasakgbb/physioSim-sub001/internal/database"
	"github.com/dhasakgbb/physioSim-sub001/internal/evaluation"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/backup"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/catalog"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/interactions"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/profiles"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/simulation"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/stacks"
	"github.com/dhasakgbb/physioSim-sub001/internal/modules/sweetspot"
	"github.com/dhasakgbb/physioSim-sub001/internal/scheduler"
	"github.com/dhasakgbb/physioSim-sub001/internal/server"
	"github.com/dhasakgbb/physioSim-sub001/pkg/logger"
)

// The scheduler uses six-field cron specs (seconds first).
const (
	// maintenanceCronSpec runs WAL checkpoints and integrity checks hourly.
	maintenanceCronSpec = "0 0 * * * *"

	// snapshotPruneCronSpec trims old stack snapshots nightly.
	snapshotPruneCronSpec = "0 30 3 * * *"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting physioSim")

	// Three-database layout:
	// - catalog.db: reference data (compounds, curves, esters, interactions)
	// - profiles.db: user profiles and lab scales
	// - stacks.db: saved stacks, entries and evaluation snapshots
	catalogDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "catalog.db"),
		Profile: database.ProfileReference,
		Name:    "catalog",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open catalog database")
	}
	defer catalogDB.Close()

	profilesDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "profiles.db"),
		Profile: database.ProfileStandard,
		Name:    "profiles",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open profiles database")
	}
	defer profilesDB.Close()

	stacksDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "stacks.db"),
		Profile: database.ProfileStandard,
		Name:    "stacks",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open stacks database")
	}
	defer stacksDB.Close()

	for _, db := range []*database.DB{catalogDB, profilesDB, stacksDB} {
		if err := db.Migrate(); err != nil {
			log.Fatal().Err(err).Str("database", db.Name()).Msg("Migration failed")
		}
	}

	// Seed reference data on first run. Both seeders are idempotent.
	if err := catalog.Seed(catalogDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed compound catalog")
	}
	if err := interactions.Seed(catalogDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed interaction matrix")
	}

	catalogRepo := catalog.NewRepository(catalogDB.Conn(), log)
	if err := catalogRepo.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load compound catalog")
	}
	log.Info().Int("compounds", catalogRepo.Count()).Msg("Compound catalog loaded")

	interactionRepo := interactions.NewRepository(catalogDB.Conn(), log)
	if err := interactionRepo.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load interaction matrix")
	}
	log.Info().Int("pairs", interactionRepo.Count()).Msg("Interaction matrix loaded")

	engine := evaluation.NewEngine(catalogRepo, interactionRepo, cfg.EvalCacheSize, log)

	profileRepo := profiles.NewRepository(profilesDB.Conn(), log)
	stackRepo := stacks.NewRepository(stacksDB.Conn(), log)
	stackService := stacks.NewService(stackRepo, profileRepo, engine, log)
	sweetSpotService := sweetspot.NewService(catalogRepo, log)
	simulationService := simulation.NewService(catalogRepo, log)

	// Background jobs: hourly WAL checkpoints plus optional S3 backups.
	allDatabases := map[string]*database.DB{
		"catalog":  catalogDB,
		"profiles": profilesDB,
		"stacks":   stacksDB,
	}

	sched := scheduler.New(log)
	maintenanceJob := scheduler.NewDatabaseMaintenanceJob(allDatabases, log)
	if err := sched.AddJob(maintenanceCronSpec, maintenanceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule database maintenance")
	}

	pruneJob := stacks.NewPruneJob(stackRepo, stacks.DefaultSnapshotsKept, log)
	if err := sched.AddJob(snapshotPruneCronSpec, pruneJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule snapshot pruning")
	}

	if cfg.Backup != nil && cfg.Backup.Enabled {
		backupService, err := backup.NewServiceFromConfig(context.Background(), *cfg.Backup, allDatabases, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize backup service")
		}
		if err := sched.AddJob(cfg.Backup.CronSpec, backupService); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backups")
		}
		log.Info().Str("bucket", cfg.Backup.Bucket).Str("cron", cfg.Backup.CronSpec).Msg("S3 backups enabled")
	}

	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:        log,
		Config:     cfg,
		CatalogDB:  catalogDB,
		ProfilesDB: profilesDB,
		StacksDB:   stacksDB,

		CatalogRepo:     catalogRepo,
		InteractionRepo: interactionRepo,
		ProfileRepo:     profileRepo,
		StackRepo:       stackRepo,
		StackService:    stackService,
		SweetSpot:       sweetSpotService,
		Simulation:      simulationService,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server failed")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("physioSim stopped")
}
