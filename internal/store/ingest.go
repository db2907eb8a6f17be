package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ursbench/internal/aggregate"
	"ursbench/internal/folds"
	"ursbench/internal/report"
)

// IngestCorpus upserts a corpus and its per-document metrics records.
// Returns the corpus key used for all dependent records.
func IngestCorpus(ctx context.Context, db *sql.DB, dir, corpusKey string, records []report.DocumentMetrics) (string, error) {
	if db == nil {
		return "", errors.New("store: db is nil")
	}
	if corpusKey == "" {
		return "", errors.New("store: corpus key is required")
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO corpora (corpus_id, corpus_key, dir, document_count, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (corpus_key) DO NOTHING`,
		uuid.NewString(), corpusKey, dir, len(records),
	); err != nil {
		return "", fmt.Errorf("upsert corpus: %w", err)
	}

	for _, record := range records {
		breakdown, err := CanonicalJSON(record.Complexity)
		if err != nil {
			return "", fmt.Errorf("encode breakdown for %s: %w", record.ID, err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO documents (corpus_key, document_id, category, path,
			     functional, regulatory, performance, integration, technical,
			     complexity, breakdown)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (corpus_key, document_id) DO UPDATE SET
			     category = excluded.category,
			     path = excluded.path,
			     functional = excluded.functional,
			     regulatory = excluded.regulatory,
			     performance = excluded.performance,
			     integration = excluded.integration,
			     technical = excluded.technical,
			     complexity = excluded.complexity,
			     breakdown = excluded.breakdown`,
			corpusKey, record.ID, string(record.Category), record.Path,
			record.SectionCounts["functional"], record.SectionCounts["regulatory"],
			record.SectionCounts["performance"], record.SectionCounts["integration"],
			record.SectionCounts["technical"],
			record.Complexity.Composite, string(breakdown),
		); err != nil {
			return "", fmt.Errorf("upsert document %s: %w", record.ID, err)
		}
	}
	return corpusKey, nil
}

// IngestFolds upserts a fold assignment for a corpus.
func IngestFolds(ctx context.Context, db *sql.DB, corpusKey string, assignment *folds.Assignment) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	if assignment == nil {
		return errors.New("store: assignment is nil")
	}
	for _, fold := range assignment.Folds {
		testIDs, err := json.Marshal(fold.TestIDs)
		if err != nil {
			return fmt.Errorf("encode test ids: %w", err)
		}
		trainIDs, err := json.Marshal(fold.TrainIDs)
		if err != nil {
			return fmt.Errorf("encode train ids: %w", err)
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO fold_assignments (corpus_key, k, fold_index, test_ids, train_ids)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (corpus_key, k, fold_index) DO UPDATE SET
			     test_ids = excluded.test_ids,
			     train_ids = excluded.train_ids`,
			corpusKey, assignment.K, fold.Index, string(testIDs), string(trainIDs),
		); err != nil {
			return fmt.Errorf("upsert fold %d: %w", fold.Index, err)
		}
	}
	return nil
}

// RunRecord describes one completed run for persistence.
type RunRecord struct {
	RunID      string
	CorpusKey  string
	Command    []string
	Workers    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// IngestRun upserts a run and its per-document results.
func IngestRun(ctx context.Context, db *sql.DB, run RunRecord, results []aggregate.RunResult) error {
	if db == nil {
		return errors.New("store: db is nil")
	}
	if run.RunID == "" {
		return errors.New("store: run id is required")
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO runs (run_id, corpus_key, command, workers, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id) DO NOTHING`,
		run.RunID, run.CorpusKey, strings.Join(run.Command, " "),
		run.Workers, run.StartedAt, run.FinishedAt,
	); err != nil {
		return fmt.Errorf("upsert run %s: %w", run.RunID, err)
	}

	for _, result := range results {
		var reason any
		if result.FailureReason != "" {
			reason = result.FailureReason
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO run_results (run_id, document_id, fold_index, success,
			     duration_seconds, cost, requirements_covered, failure_reason)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (run_id, document_id) DO UPDATE SET
			     fold_index = excluded.fold_index,
			     success = excluded.success,
			     duration_seconds = excluded.duration_seconds,
			     cost = excluded.cost,
			     requirements_covered = excluded.requirements_covered,
			     failure_reason = excluded.failure_reason`,
			run.RunID, result.DocumentID, result.FoldIndex, result.Success,
			result.DurationSeconds, result.Cost, result.RequirementsCovered, reason,
		); err != nil {
			return fmt.Errorf("upsert result %s/%s: %w", run.RunID, result.DocumentID, err)
		}
	}
	return nil
}

// IngestReport upserts an aggregate report keyed by its content
// fingerprint. Re-ingesting an identical report is a no-op.
func IngestReport(ctx context.Context, db *sql.DB, runID string, rep *aggregate.Report) (string, error) {
	if db == nil {
		return "", errors.New("store: db is nil")
	}
	if rep == nil {
		return "", errors.New("store: report is nil")
	}
	payload, err := CanonicalJSON(rep)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	key := fingerprintBytes(payload)

	var run any
	if runID != "" {
		run = runID
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO reports (report_id, report_key, run_id, payload, created_at)
		 VALUES (?, ?, ?, ?, now())
		 ON CONFLICT (report_key) DO NOTHING`,
		uuid.NewString(), key, run, string(payload),
	); err != nil {
		return "", fmt.Errorf("upsert report: %w", err)
	}
	return key, nil
}
