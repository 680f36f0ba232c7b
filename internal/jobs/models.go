// Package jobs persists one row per conform operation in a SQLite-backed
// ledger, so a finished job's canvas/rectangles can be queried after the
// fact and so housekeeping can find and reclaim stale outputs.
package jobs

import (
	"time"

	"mediaconform/internal/canvas"
	"mediaconform/internal/geometry"
)

// Status is a closed sum over a job's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one row of the ledger: the resolved configuration and outcome of a
// single conform operation.
type Job struct {
	ID         string
	Status     Status
	CreatedAt  time.Time
	FinishedAt time.Time

	Feed      canvas.Feed
	Operation canvas.Operation
	Input     geometry.Dimensions

	Canvas geometry.Dimensions
	Src    geometry.Rectangle
	Dst    geometry.Rectangle

	OutputPath  string
	OutputBytes int64
	Error       string
}
