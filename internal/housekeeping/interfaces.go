// filepath: internal/housekeeping/interfaces.go
package housekeeping

import "time"

// JobRecord is the subset of a job ledger row housekeeping needs to decide
// whether an output can be reclaimed.
type JobRecord struct {
	ID          string
	Status      string
	CreatedAt   time.Time
	OutputPath  string
	OutputBytes int64
}

// Ledger is the job-ledger surface housekeeping depends on. Satisfied by
// internal/jobs.Store.
type Ledger interface {
	FinishedBefore(cutoff time.Time) ([]JobRecord, error)
	OldestFinished(limit, offset int) ([]JobRecord, error)
	TotalOutputBytes() (int64, error)
	DeleteJob(id string) error
	LastHousekeepingRun() (time.Time, error)
	SetLastHousekeepingRun(t time.Time) error
}

// OutputStore removes the on-disk render output (and any temp scratch dir)
// belonging to a finished job.
type OutputStore interface {
	RemoveJobOutput(rec JobRecord) error
}
