package live

import (
	"fmt"

	"ursbench/internal/runner"
)

// Reduce applies a document event to the UI state.
func Reduce(state State, event runner.DocumentEvent) State {
	state = ensureRow(state, event)
	state = applyDocumentEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.DocumentEvent) State {
	if event.Index < 0 || event.Index < len(state.Rows) {
		return state
	}
	rows := make([]DocumentRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = DocumentRow{Index: i, Status: runner.DocumentQueued}
	}
	state.Rows = rows
	return state
}

// applyDocumentEvent updates a row with the given event.
func applyDocumentEvent(state State, event runner.DocumentEvent) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.ID == "" {
		row.ID = event.DocumentID
	}
	row.FoldIndex = event.FoldIndex
	row.Status = event.Type
	switch event.Type {
	case runner.DocumentRunning:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case runner.DocumentPassed, runner.DocumentFailed, runner.DocumentError:
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Error = event.Error
	}
	state.Rows[event.Index] = row
	return state
}

// recount rebuilds the status counts from rows.
func recount(rows []DocumentRow) StatusCounts {
	counts := StatusCounts{}
	for _, row := range rows {
		switch row.Status {
		case runner.DocumentQueued:
			counts.Queued++
		case runner.DocumentRunning:
			counts.Running++
		case runner.DocumentPassed:
			counts.Passed++
		case runner.DocumentFailed:
			counts.Failed++
		case runner.DocumentError:
			counts.Errors++
		}
	}
	return counts
}

// formatLastEvent renders a footer message for notable events.
func formatLastEvent(event runner.DocumentEvent) string {
	switch event.Type {
	case runner.DocumentPassed:
		return fmt.Sprintf("%s passed", event.DocumentID)
	case runner.DocumentFailed:
		return fmt.Sprintf("%s failed: %s", event.DocumentID, event.Error)
	case runner.DocumentError:
		return fmt.Sprintf("%s error: %s", event.DocumentID, event.Error)
	default:
		return ""
	}
}
