// internal/storage/paths.go
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// jobPath is an internal helper that builds and creates a year/month
// namespaced path under root for the given job ID, guarding against path
// traversal from a malformed job ID.
func jobPath(root string, createdAt time.Time, jobID string, subDirs ...string) (string, error) {
	year := createdAt.Format("2006")
	month := createdAt.Format("01")

	allDirs := append(append([]string{}, subDirs...), year, month)
	dir := filepath.Join(root, filepath.Join(allDirs...))

	cleanedDir := filepath.Clean(dir)
	cleanedRoot := filepath.Clean(root)
	if !strings.HasPrefix(cleanedDir, cleanedRoot) || cleanedDir == cleanedRoot {
		return "", fmt.Errorf("invalid path: potential path traversal")
	}

	if err := os.MkdirAll(cleanedDir, 0755); err != nil {
		return "", fmt.Errorf("could not create directory structure: %w", err)
	}

	return filepath.Join(cleanedDir, jobID), nil
}

// GetTempPath returns the scratch path under which a job's uploaded source is
// staged while the job is in flight (resizers render into GetOutputPath).
func GetTempPath(tempRoot string, createdAt time.Time, jobID string) (string, error) {
	return jobPath(tempRoot, createdAt, jobID, "tmp")
}

// GetOutputPath returns the durable path a finished job's rendered output
// is served from.
func GetOutputPath(outputRoot string, createdAt time.Time, jobID, ext string) (string, error) {
	base, err := jobPath(outputRoot, createdAt, jobID)
	if err != nil {
		return "", err
	}
	return base + ext, nil
}
