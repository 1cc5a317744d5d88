package stacks

import (
	"github.com/rs/zerolog"
)

// DefaultSnapshotsKept is how many snapshots each stack retains after a
// prune run. Comparisons only ever need a handful of recent results.
const DefaultSnapshotsKept = 20

// PruneJob trims old evaluation snapshots on a schedule.
type PruneJob struct {
	repo *Repository
	keep int
	log  zerolog.Logger
}

// NewPruneJob creates a snapshot prune job. keep <= 0 falls back to
// DefaultSnapshotsKept.
func NewPruneJob(repo *Repository, keep int, log zerolog.Logger) *PruneJob {
	if keep <= 0 {
		keep = DefaultSnapshotsKept
	}
	return &PruneJob{
		repo: repo,
		keep: keep,
		log:  log.With().Str("job", "snapshot_prune").Logger(),
	}
}

// Name returns the job name for scheduler logging.
func (j *PruneJob) Name() string {
	return "snapshot_prune"
}

// Run removes all but the newest snapshots of every stack.
func (j *PruneJob) Run() error {
	pruned, err := j.repo.PruneSnapshots(j.keep)
	if err != nil {
		return err
	}
	j.log.Debug().Int64("pruned", pruned).Msg("Snapshot prune complete")
	return nil
}
