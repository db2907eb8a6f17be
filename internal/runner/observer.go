package runner

import "time"

// DocumentEventType identifies a per-document status update.
type DocumentEventType string

const (
	// DocumentQueued marks a document known but not yet started.
	DocumentQueued DocumentEventType = "queued"
	// DocumentRunning marks an active generator invocation.
	DocumentRunning DocumentEventType = "running"
	// DocumentPassed marks a successful generation.
	DocumentPassed DocumentEventType = "passed"
	// DocumentFailed marks a failed generation.
	DocumentFailed DocumentEventType = "failed"
	// DocumentError marks a runner-level error for the document.
	DocumentError DocumentEventType = "error"
)

// DocumentEvent carries a single status update for a document.
type DocumentEvent struct {
	Index      int
	DocumentID string
	FoldIndex  int
	Type       DocumentEventType
	WallTime   time.Duration
	Error      string
	EmittedAt  time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, corpusDir string, documents int)
	// OnDocumentEvent delivers a document status update.
	OnDocumentEvent(event DocumentEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// NopObserver ignores all events.
type NopObserver struct{}

// OnRunStart implements RunObserver.
func (NopObserver) OnRunStart(string, string, int) {}

// OnDocumentEvent implements RunObserver.
func (NopObserver) OnDocumentEvent(DocumentEvent) {}

// OnRunEnd implements RunObserver.
func (NopObserver) OnRunEnd(Results) {}
