package runner

import (
	"time"

	"ursbench/internal/aggregate"
)

// Results is the persisted output of one evaluation run.
type Results struct {
	RunID      string                `json:"run_id"`
	CorpusKey  string                `json:"corpus_key"`
	CorpusDir  string                `json:"corpus_dir"`
	Command    []string              `json:"command"`
	Workers    int                   `json:"workers"`
	K          int                   `json:"k"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Results    []aggregate.RunResult `json:"results"`
	Summary    Summary               `json:"summary"`
}

// Summary aggregates headline counts for a run.
type Summary struct {
	Documents int     `json:"documents"`
	Passed    int     `json:"passed"`
	Failed    int     `json:"failed"`
	PassRate  float64 `json:"pass_rate"`
}

// Deps allows injecting identity and clock functions for a run.
type Deps struct {
	RunID func() (string, error)
	Now   func() time.Time
}

// Params configures a run invocation.
type Params struct {
	CorpusDir string
	CorpusKey string
	Command   []string
	Workers   int
	Timeout   time.Duration
	OutputDir string
	Observer  RunObserver
	Deps      Deps
}

// summarize computes the run summary from collected results.
func summarize(results []aggregate.RunResult) Summary {
	summary := Summary{Documents: len(results)}
	for _, result := range results {
		if result.Success {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	if summary.Documents > 0 {
		summary.PassRate = float64(summary.Passed) / float64(summary.Documents)
	}
	return summary
}
