package runner

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"ursbench/internal/corpus"
	"ursbench/internal/folds"
	"ursbench/internal/testutil"
)

const fixedRunID = "20240101T000000Z-abcdef012345"

func fixedDeps() Deps {
	return Deps{RunID: func() (string, error) { return fixedRunID, nil }}
}

func testCorpus(t *testing.T, ids ...string) *corpus.Corpus {
	t.Helper()
	docs := make([]*corpus.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, &corpus.Document{
			ID:            id,
			Category:      corpus.Category3,
			Path:          "corpus/" + id + ".md",
			SectionCounts: map[corpus.SectionKind]int{corpus.SectionFunctional: 2},
		})
	}
	c, err := corpus.NewCorpus(docs)
	if err != nil {
		t.Fatalf("NewCorpus: %v", err)
	}
	return c
}

// testAssignment splits the IDs into two folds so every document sits in
// exactly one test set.
func testAssignment(ids ...string) *folds.Assignment {
	mid := (len(ids) + 1) / 2
	return &folds.Assignment{
		K:     2,
		Total: len(ids),
		Folds: []folds.Fold{
			{Index: 0, TestIDs: ids[:mid], TrainIDs: ids[mid:]},
			{Index: 1, TestIDs: ids[mid:], TrainIDs: ids[:mid]},
		},
	}
}

// recordingObserver collects events for assertions; safe for concurrent use.
type recordingObserver struct {
	mu     sync.Mutex
	starts int
	ends   int
	events []DocumentEvent
}

func (r *recordingObserver) OnRunStart(string, string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.starts++
}

func (r *recordingObserver) OnDocumentEvent(event DocumentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingObserver) OnRunEnd(Results) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ends++
}

func (r *recordingObserver) countByType(eventType DocumentEventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, event := range r.events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

func echoCommand(payload string) []string {
	// The runner appends the document path as a trailing argument; with
	// sh -c it lands in $0 and the script ignores it.
	return []string{"sh", "-c", "echo '" + payload + "'"}
}

func TestRunEvaluatesEachTestDocumentOnce(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-003", "URS-001", "URS-002")
	assignment := testAssignment("URS-003", "URS-001", "URS-002")
	observer := &recordingObserver{}

	results, err := Run(ctx, c, assignment, Params{
		CorpusDir: "corpus",
		CorpusKey: "deadbeef",
		Command:   echoCommand(`{"success":true,"cost":0.25,"requirements_covered":4}`),
		Workers:   2,
		Observer:  observer,
		Deps:      fixedDeps(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if results.RunID != fixedRunID {
		t.Errorf("RunID = %q", results.RunID)
	}
	if results.K != 2 || results.Workers != 2 {
		t.Errorf("K = %d, Workers = %d", results.K, results.Workers)
	}
	if len(results.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(results.Results))
	}
	for i, want := range []string{"URS-001", "URS-002", "URS-003"} {
		got := results.Results[i]
		if got.DocumentID != want {
			t.Errorf("results[%d].DocumentID = %q, want %q", i, got.DocumentID, want)
		}
		if !got.Success || got.Cost != 0.25 || got.RequirementsCovered != 4 {
			t.Errorf("results[%d] = %+v", i, got)
		}
	}
	if results.Summary.Passed != 3 || results.Summary.Failed != 0 || results.Summary.PassRate != 1.0 {
		t.Errorf("summary = %+v", results.Summary)
	}

	if observer.starts != 1 || observer.ends != 1 {
		t.Errorf("starts = %d, ends = %d", observer.starts, observer.ends)
	}
	if queued := observer.countByType(DocumentQueued); queued != 3 {
		t.Errorf("queued events = %d, want 3", queued)
	}
	if passed := observer.countByType(DocumentPassed); passed != 3 {
		t.Errorf("passed events = %d, want 3", passed)
	}
}

func TestRunConvertsCommandFailureToFailedResult(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001", "URS-002")
	assignment := testAssignment("URS-001", "URS-002")

	results, err := Run(ctx, c, assignment, Params{
		Command: []string{"sh", "-c", "echo boom >&2; exit 3"},
		Deps:    fixedDeps(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, result := range results.Results {
		if result.Success {
			t.Errorf("%s succeeded", result.DocumentID)
		}
		if result.FailureReason != "boom" {
			t.Errorf("%s FailureReason = %q, want boom", result.DocumentID, result.FailureReason)
		}
	}
	if results.Summary.Failed != 2 || results.Summary.PassRate != 0 {
		t.Errorf("summary = %+v", results.Summary)
	}
}

func TestRunKeepsGeneratorFailureReason(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001")
	assignment := testAssignment("URS-001")

	results, err := Run(ctx, c, assignment, Params{
		Command: echoCommand(`{"success":false,"failure_reason":"coverage_gap"}`),
		Deps:    fixedDeps(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := results.Results[0].FailureReason; got != "coverage_gap" {
		t.Errorf("FailureReason = %q", got)
	}
}

func TestRunDefaultsMissingFailureReason(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001")
	assignment := testAssignment("URS-001")

	results, err := Run(ctx, c, assignment, Params{
		Command: echoCommand(`{"success":false}`),
		Deps:    fixedDeps(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := results.Results[0].FailureReason; got != "generation_failed" {
		t.Errorf("FailureReason = %q", got)
	}
}

func TestRunRejectsMalformedGeneratorOutput(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001")
	assignment := testAssignment("URS-001")

	_, err := Run(ctx, c, assignment, Params{
		Command: []string{"sh", "-c", "echo not json"},
		Deps:    fixedDeps(),
	})
	if err == nil {
		t.Fatal("Run accepted malformed generator output")
	}
	if !strings.Contains(err.Error(), "parse generator output") {
		t.Errorf("err = %v", err)
	}
}

func TestRunTimeoutBecomesFailedResult(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001")
	assignment := testAssignment("URS-001")

	results, err := Run(ctx, c, assignment, Params{
		Command: []string{"sh", "-c", "sleep 2"},
		Timeout: 50 * time.Millisecond,
		Deps:    fixedDeps(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	result := results.Results[0]
	if result.Success || result.FailureReason != "timeout" {
		t.Errorf("result = %+v", result)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := testCorpus(t, "URS-001", "URS-002")
	assignment := testAssignment("URS-001", "URS-002")

	_, err := Run(ctx, c, assignment, Params{
		Command: echoCommand(`{"success":true}`),
		Deps:    fixedDeps(),
	})
	if err == nil {
		t.Fatal("Run ignored cancellation")
	}
	if !strings.Contains(err.Error(), "run cancelled") {
		t.Errorf("err = %v", err)
	}
}

func TestRunRejectsUnknownDocument(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001")
	assignment := testAssignment("URS-001", "URS-999")

	_, err := Run(ctx, c, assignment, Params{
		Command: echoCommand(`{"success":true}`),
		Deps:    fixedDeps(),
	})
	if err == nil || !strings.Contains(err.Error(), "URS-999") {
		t.Errorf("err = %v", err)
	}
}

func TestRunAndWriteProducesArtifacts(t *testing.T) {
	ctx := testutil.Context(t, testutil.DefaultTimeout)
	c := testCorpus(t, "URS-001", "URS-002")
	assignment := testAssignment("URS-001", "URS-002")
	outputDir := t.TempDir()
	corpusKey := "0123456789abcdef0123456789abcdef"

	results, paths, err := RunAndWrite(ctx, c, assignment, Params{
		CorpusKey: corpusKey,
		Command:   echoCommand(`{"success":true,"cost":0.1,"requirements_covered":2}`),
		OutputDir: outputDir,
		Deps:      fixedDeps(),
	})
	if err != nil {
		t.Fatalf("RunAndWrite: %v", err)
	}
	if !strings.Contains(paths.RunDir(), corpusKey[:12]) {
		t.Errorf("RunDir = %q, want truncated corpus key", paths.RunDir())
	}
	if !strings.Contains(paths.RunDir(), fixedRunID) {
		t.Errorf("RunDir = %q, want run id", paths.RunDir())
	}

	data, err := os.ReadFile(paths.ResultsPath())
	if err != nil {
		t.Fatalf("read results.json: %v", err)
	}
	var persisted Results
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("unmarshal results.json: %v", err)
	}
	if persisted.RunID != results.RunID || len(persisted.Results) != 2 {
		t.Errorf("persisted = %+v", persisted)
	}

	foldData, err := os.ReadFile(paths.FoldsPath())
	if err != nil {
		t.Fatalf("read fold_assignments.json: %v", err)
	}
	var persistedFolds folds.Assignment
	if err := json.Unmarshal(foldData, &persistedFolds); err != nil {
		t.Fatalf("unmarshal fold_assignments.json: %v", err)
	}
	if persistedFolds.K != 2 || persistedFolds.Total != 2 {
		t.Errorf("persisted folds = %+v", persistedFolds)
	}
}
