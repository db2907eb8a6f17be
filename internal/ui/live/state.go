package live

import (
	"time"

	"ursbench/internal/runner"
)

// DocumentRow holds UI state for a single document.
type DocumentRow struct {
	Index      int
	ID         string
	FoldIndex  int
	Status     runner.DocumentEventType
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued  int
	Running int
	Passed  int
	Failed  int
	Errors  int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	CorpusDir string
	Documents int
	StartedAt time.Time
	Finished  bool
	Summary   runner.Summary
	Rows      []DocumentRow
	Counts    StatusCounts
	LastEvent string
}
