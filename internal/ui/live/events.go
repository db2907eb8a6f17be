package live

import "ursbench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventDocument delivers a document status update.
	EventDocument
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	RunID     string
	CorpusDir string
	Documents int
	Document  runner.DocumentEvent
	Summary   runner.Summary
}
