package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhasakgbb/physioSim-sub001/internal/database"
)

const maintenanceTimeout = 2 * time.Minute

// DatabaseMaintenanceJob checkpoints WAL files and verifies integrity
// across every open database.
type DatabaseMaintenanceJob struct {
	log       zerolog.Logger
	databases map[string]*database.DB
}

// NewDatabaseMaintenanceJob creates a new DatabaseMaintenanceJob
func NewDatabaseMaintenanceJob(databases map[string]*database.DB, log zerolog.Logger) *DatabaseMaintenanceJob {
	return &DatabaseMaintenanceJob{
		log:       log.With().Str("job", "db_maintenance").Logger(),
		databases: databases,
	}
}

// Name returns the job name
func (j *DatabaseMaintenanceJob) Name() string {
	return "db_maintenance"
}

// Run executes the maintenance pass. Failures on one database never
// block the others.
func (j *DatabaseMaintenanceJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	for name, db := range j.databases {
		if db == nil {
			continue
		}

		if err := db.WALCheckpoint("TRUNCATE"); err != nil {
			j.log.Warn().Err(err).Str("database", name).Msg("WAL checkpoint failed")
		}

		if err := db.QuickCheck(ctx); err != nil {
			j.log.Error().Err(err).Str("database", name).Msg("Integrity check failed")
			continue
		}

		j.log.Debug().Str("database", name).Msg("Maintenance pass completed")
	}

	return nil
}
