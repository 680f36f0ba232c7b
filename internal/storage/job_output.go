// filepath: internal/storage/job_output.go
package storage

import (
	"os"
	"path/filepath"

	"mediaconform/internal/housekeeping"
)

// JobOutputStore removes a finished job's rendered output file and its
// scratch temp directory. It satisfies housekeeping.OutputStore.
type JobOutputStore struct {
	TempRoot string
}

var _ housekeeping.OutputStore = JobOutputStore{}

// RemoveJobOutput deletes rec's output file (if any) and the temp scratch
// directory namespaced by the job ID. Missing files are not an error: the
// host may already have cleaned them up, or cancellation (spec.md §5) may
// have left nothing behind.
func (j JobOutputStore) RemoveJobOutput(rec housekeeping.JobRecord) error {
	if rec.OutputPath != "" {
		if err := os.Remove(rec.OutputPath); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	tempDir := filepath.Join(j.TempRoot, rec.ID)
	if err := os.RemoveAll(tempDir); err != nil {
		return err
	}
	return nil
}
