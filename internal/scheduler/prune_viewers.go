package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// ViewerPruner removes viewers that have been idle for too long.
type ViewerPruner interface {
	Prune(idle time.Duration) int
	Len() int
}

// PruneViewersJob closes viewers whose page has stopped polling.
type PruneViewersJob struct {
	log     zerolog.Logger
	store   ViewerPruner
	maxIdle time.Duration
}

// NewPruneViewersJob creates a job pruning viewers idle longer than maxIdle.
func NewPruneViewersJob(store ViewerPruner, maxIdle time.Duration, log zerolog.Logger) *PruneViewersJob {
	return &PruneViewersJob{
		log:     log.With().Str("job", "prune_viewers").Logger(),
		store:   store,
		maxIdle: maxIdle,
	}
}

// Name returns the job name
func (j *PruneViewersJob) Name() string {
	return "prune_viewers"
}

// Run executes the job
func (j *PruneViewersJob) Run() error {
	removed := j.store.Prune(j.maxIdle)
	j.log.Debug().
		Int("removed", removed).
		Int("remaining", j.store.Len()).
		Msg("Idle viewers pruned")
	return nil
}
