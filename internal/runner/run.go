// Package runner drives the external test-generation system across the
// corpus: one bounded-concurrency invocation per test document, results
// collected into a single run record.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"ursbench/internal/aggregate"
	"ursbench/internal/corpus"
	"ursbench/internal/folds"
)

// job couples one test document with its fold index.
type job struct {
	index     int
	doc       *corpus.Document
	foldIndex int
}

// Run executes the generator for every test document in the assignment.
// Each document belongs to exactly one test fold, so each is evaluated
// once. Workers bound concurrency; cancellation stops scheduling and
// fails the run.
func Run(ctx context.Context, c *corpus.Corpus, assignment *folds.Assignment, params Params) (Results, error) {
	deps := params.Deps
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.RunID == nil {
		deps.RunID = NewRunID
	}
	observer := params.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	workers := params.Workers
	if workers < 1 {
		workers = 1
	}

	runID, err := deps.RunID()
	if err != nil {
		return Results{}, fmt.Errorf("new run id: %w", err)
	}

	jobs, err := collectJobs(c, assignment)
	if err != nil {
		return Results{}, err
	}

	observer.OnRunStart(runID, params.CorpusDir, len(jobs))
	for _, j := range jobs {
		observer.OnDocumentEvent(DocumentEvent{
			Index:      j.index,
			DocumentID: j.doc.ID,
			FoldIndex:  j.foldIndex,
			Type:       DocumentQueued,
			EmittedAt:  deps.Now(),
		})
	}

	startedAt := deps.Now()
	collected := make([]aggregate.RunResult, len(jobs))
	errs := make([]error, len(jobs))

	jobCh := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				collected[j.index], errs[j.index] = runJob(ctx, j, params, deps, observer)
			}
		}()
	}

scheduling:
	for _, j := range jobs {
		select {
		case <-ctx.Done():
			break scheduling
		case jobCh <- j:
		}
	}
	close(jobCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Results{}, fmt.Errorf("run cancelled: %w", err)
	}
	for _, err := range errs {
		if err != nil {
			return Results{}, err
		}
	}

	results := Results{
		RunID:      runID,
		CorpusKey:  params.CorpusKey,
		CorpusDir:  params.CorpusDir,
		Command:    params.Command,
		Workers:    workers,
		K:          assignment.K,
		StartedAt:  startedAt,
		FinishedAt: deps.Now(),
		Results:    collected,
		Summary:    summarize(collected),
	}
	observer.OnRunEnd(results)
	return results, nil
}

// runJob executes one document and reports its lifecycle to the observer.
func runJob(ctx context.Context, j job, params Params, deps Deps, observer RunObserver) (aggregate.RunResult, error) {
	observer.OnDocumentEvent(DocumentEvent{
		Index:      j.index,
		DocumentID: j.doc.ID,
		FoldIndex:  j.foldIndex,
		Type:       DocumentRunning,
		EmittedAt:  deps.Now(),
	})

	result, err := executeDocument(ctx, params.Command, j.doc.ID, j.doc.Path, j.foldIndex, params.Timeout, deps.Now)
	if err != nil {
		observer.OnDocumentEvent(DocumentEvent{
			Index:      j.index,
			DocumentID: j.doc.ID,
			FoldIndex:  j.foldIndex,
			Type:       DocumentError,
			Error:      err.Error(),
			EmittedAt:  deps.Now(),
		})
		return aggregate.RunResult{}, err
	}

	eventType := DocumentPassed
	if !result.Success {
		eventType = DocumentFailed
	}
	observer.OnDocumentEvent(DocumentEvent{
		Index:      j.index,
		DocumentID: j.doc.ID,
		FoldIndex:  j.foldIndex,
		Type:       eventType,
		WallTime:   time.Duration(result.DurationSeconds * float64(time.Second)),
		Error:      result.FailureReason,
		EmittedAt:  deps.Now(),
	})
	return result, nil
}

// collectJobs flattens the assignment's test sets into an ordered job
// list, one entry per corpus document.
func collectJobs(c *corpus.Corpus, assignment *folds.Assignment) ([]job, error) {
	if assignment == nil {
		return nil, fmt.Errorf("fold assignment is required")
	}
	var jobs []job
	for _, fold := range assignment.Folds {
		for _, id := range fold.TestIDs {
			doc, ok := c.ByID(id)
			if !ok {
				return nil, fmt.Errorf("assignment references unknown document %s", id)
			}
			jobs = append(jobs, job{doc: doc, foldIndex: fold.Index})
		}
	}
	sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].doc.ID < jobs[k].doc.ID })
	for i := range jobs {
		jobs[i].index = i
	}
	return jobs, nil
}

// RunAndWrite executes a run and persists results.json and
// fold_assignments.json under the output directory.
func RunAndWrite(ctx context.Context, c *corpus.Corpus, assignment *folds.Assignment, params Params) (Results, OutputPaths, error) {
	results, err := Run(ctx, c, assignment, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}

	paths, err := NewOutputPaths(params.OutputDir, params.CorpusKey, results.RunID)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return Results{}, OutputPaths{}, fmt.Errorf("create run dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return Results{}, OutputPaths{}, err
	}
	if err := writeJSON(paths.FoldsPath(), assignment); err != nil {
		return Results{}, OutputPaths{}, err
	}
	return results, paths, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
