// Package runs implements the incremental profiling controller. A run
// consumes a namespace's unprocessed inputs exactly once: inputs the
// tracker already recorded are skipped, fresh inputs go through the
// profiling workflow one at a time, and a run that finds nothing new
// completes as a no-op.
package runs

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusNoOp      = "no_op"
)

// Run records one incremental profiling pass over a namespace.
type Run struct {
	ID             uuid.UUID  `json:"id"`
	Namespace      string     `json:"namespace"`
	Status         string     `json:"status"`
	ProcessedCount int        `json:"processed_count"`
	CreatedCount   int        `json:"created_count"`
	UpdatedCount   int        `json:"updated_count"`
	WarningCount   int        `json:"warning_count"`
	Warnings       []string   `json:"warnings,omitempty"`
	Error          string     `json:"error,omitempty"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// StartCommand carries the parameters for starting a run. BatchSize
// caps how many fresh inputs one run consumes; zero means no cap.
// ForceReprocess ignores the consumption tracker so already-processed
// inputs run again.
type StartCommand struct {
	Namespace      string `json:"namespace"`
	BatchSize      int    `json:"batch_size,omitempty"`
	ForceReprocess bool   `json:"force_reprocess,omitempty"`
}
