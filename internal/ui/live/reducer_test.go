package live

import (
	"testing"
	"time"

	"ursbench/internal/runner"
)

func event(index int, id string, eventType runner.DocumentEventType) runner.DocumentEvent {
	return runner.DocumentEvent{
		Index:      index,
		DocumentID: id,
		FoldIndex:  index % 2,
		Type:       eventType,
		EmittedAt:  time.Date(2024, 1, 1, 0, 0, index, 0, time.UTC),
	}
}

func TestReduceTracksDocumentLifecycle(t *testing.T) {
	state := State{}
	state = Reduce(state, event(0, "URS-001", runner.DocumentQueued))
	state = Reduce(state, event(1, "URS-002", runner.DocumentQueued))

	if len(state.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(state.Rows))
	}
	if state.Counts.Queued != 2 {
		t.Errorf("queued = %d, want 2", state.Counts.Queued)
	}

	state = Reduce(state, event(0, "URS-001", runner.DocumentRunning))
	if state.Rows[0].Status != runner.DocumentRunning {
		t.Errorf("row 0 status = %s", state.Rows[0].Status)
	}
	if state.Rows[0].StartedAt.IsZero() {
		t.Error("row 0 has no start time")
	}
	if state.Counts.Queued != 1 || state.Counts.Running != 1 {
		t.Errorf("counts = %+v", state.Counts)
	}

	state = Reduce(state, event(0, "URS-001", runner.DocumentPassed))
	if state.Rows[0].Status != runner.DocumentPassed {
		t.Errorf("row 0 status = %s", state.Rows[0].Status)
	}
	if state.Rows[0].FinishedAt.IsZero() {
		t.Error("row 0 has no finish time")
	}
	if state.Counts.Passed != 1 || state.Counts.Running != 0 {
		t.Errorf("counts = %+v", state.Counts)
	}
	if state.LastEvent != "URS-001 passed" {
		t.Errorf("LastEvent = %q", state.LastEvent)
	}
}

func TestReduceRecordsFailureDetail(t *testing.T) {
	state := State{}
	failed := event(0, "URS-001", runner.DocumentFailed)
	failed.Error = "timeout"
	state = Reduce(state, failed)

	if state.Rows[0].Error != "timeout" {
		t.Errorf("row error = %q", state.Rows[0].Error)
	}
	if state.Counts.Failed != 1 {
		t.Errorf("counts = %+v", state.Counts)
	}
	if state.LastEvent != "URS-001 failed: timeout" {
		t.Errorf("LastEvent = %q", state.LastEvent)
	}
}

func TestReduceGrowsRowsForOutOfOrderEvents(t *testing.T) {
	state := Reduce(State{}, event(3, "URS-004", runner.DocumentRunning))

	if len(state.Rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(state.Rows))
	}
	for i := 0; i < 3; i++ {
		if state.Rows[i].Status != runner.DocumentQueued {
			t.Errorf("row %d status = %s, want queued", i, state.Rows[i].Status)
		}
	}
	if state.Rows[3].ID != "URS-004" || state.Rows[3].Status != runner.DocumentRunning {
		t.Errorf("row 3 = %+v", state.Rows[3])
	}
}

func TestReduceIgnoresNegativeIndex(t *testing.T) {
	state := Reduce(State{}, event(-1, "URS-000", runner.DocumentRunning))
	if len(state.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(state.Rows))
	}
}

func TestReduceKeepsFirstDocumentID(t *testing.T) {
	state := Reduce(State{}, event(0, "URS-001", runner.DocumentQueued))
	renamed := event(0, "URS-999", runner.DocumentRunning)
	state = Reduce(state, renamed)

	if state.Rows[0].ID != "URS-001" {
		t.Errorf("row id = %q, want URS-001", state.Rows[0].ID)
	}
}
