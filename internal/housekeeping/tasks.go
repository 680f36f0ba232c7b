// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"fmt"
	"time"

	"mediaconform/internal/logging"
)

// Policy controls how aggressively housekeeping reclaims finished job
// outputs. MaxAge of 0 disables age-based cleanup; MaxDiskSpaceBytes of 0
// disables disk-space-based cleanup.
type Policy struct {
	MaxAge            time.Duration
	MaxDiskSpaceBytes int64
}

// Dependencies are the collaborators a housekeeping run needs.
type Dependencies struct {
	Ledger Ledger
	Output OutputStore
}

// Report summarizes a single housekeeping run.
type Report struct {
	JobsDeleted     int
	SpaceFreedBytes int64
	Message         string
}

// RunOnce reclaims finished job outputs per policy: first anything older
// than MaxAge, then, if still over MaxDiskSpaceBytes, the oldest finished
// jobs until usage falls back under the limit.
func RunOnce(deps Dependencies, policy Policy) (*Report, error) {
	report := &Report{}

	ageReport, err := cleanupByAge(deps, policy)
	if err != nil {
		logging.Log.Errorf("housekeeping cleanup by age failed: %v", err)
	}
	if ageReport != nil {
		report.JobsDeleted += ageReport.JobsDeleted
		report.SpaceFreedBytes += ageReport.SpaceFreedBytes
	}

	spaceReport, err := cleanupByDiskSpace(deps, policy)
	if err != nil {
		logging.Log.Errorf("housekeeping cleanup by disk space failed: %v", err)
	}
	if spaceReport != nil {
		report.JobsDeleted += spaceReport.JobsDeleted
		report.SpaceFreedBytes += spaceReport.SpaceFreedBytes
	}

	report.Message = fmt.Sprintf("housekeeping complete. %d jobs reclaimed, freeing %s.",
		report.JobsDeleted, formatBytes(report.SpaceFreedBytes))

	return report, nil
}

// cleanupByAge reclaims finished jobs whose outputs have outlived MaxAge.
func cleanupByAge(deps Dependencies, policy Policy) (*Report, error) {
	if policy.MaxAge == 0 {
		logging.Log.Debug("housekeeping cleanup by age is disabled (max age is 0)")
		return &Report{}, nil
	}

	cutoff := time.Now().Add(-policy.MaxAge)
	stale, err := deps.Ledger.FinishedBefore(cutoff)
	if err != nil {
		return nil, fmt.Errorf("could not query finished jobs: %w", err)
	}
	if len(stale) == 0 {
		return &Report{}, nil
	}

	logging.Log.Infof("found %d finished jobs older than %s, reclaiming", len(stale), policy.MaxAge)
	return deleteJobs(deps, stale), nil
}

// cleanupByDiskSpace reclaims the oldest finished jobs if total output disk
// usage exceeds the configured limit.
func cleanupByDiskSpace(deps Dependencies, policy Policy) (*Report, error) {
	if policy.MaxDiskSpaceBytes == 0 {
		logging.Log.Debug("housekeeping cleanup by disk space is disabled (max disk space is 0)")
		return &Report{}, nil
	}

	used, err := deps.Ledger.TotalOutputBytes()
	if err != nil {
		return nil, fmt.Errorf("could not get output disk usage: %w", err)
	}

	bytesToFree := used - policy.MaxDiskSpaceBytes
	if bytesToFree <= 0 {
		logging.Log.Debug("output disk usage is within limits, no cleanup needed")
		return &Report{}, nil
	}

	logging.Log.Infof("output disk usage over limit by %s, reclaiming oldest finished jobs", formatBytes(bytesToFree))

	var toDelete []JobRecord
	var freed int64
	offset := 0
	const batchSize = 100

	for freed < bytesToFree {
		batch, err := deps.Ledger.OldestFinished(batchSize, offset)
		if err != nil || len(batch) == 0 {
			logging.Log.Warn("stopping disk space cleanup; no more finished jobs to reclaim")
			break
		}

		for _, rec := range batch {
			toDelete = append(toDelete, rec)
			freed += rec.OutputBytes
			if freed >= bytesToFree {
				break
			}
		}
		offset += len(batch) // use len(batch) in case the last page is smaller than batchSize
	}

	if len(toDelete) == 0 {
		return &Report{}, nil
	}

	return deleteJobs(deps, toDelete), nil
}

// deleteJobs removes each job's on-disk output and its ledger row.
func deleteJobs(deps Dependencies, jobs []JobRecord) *Report {
	report := &Report{}

	for _, rec := range jobs {
		if err := deps.Output.RemoveJobOutput(rec); err != nil {
			logging.Log.Warnf("housekeeping: failed to remove output for job %s: %v", rec.ID, err)
		}

		if err := deps.Ledger.DeleteJob(rec.ID); err != nil {
			logging.Log.Errorf("failed to delete job record %s: %v", rec.ID, err)
			continue
		}

		report.JobsDeleted++
		report.SpaceFreedBytes += rec.OutputBytes
	}

	return report
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
