package live

import (
	"ursbench/internal/runner"
)

// eventBuffer bounds the controller's event channel. Updates beyond the
// buffer are dropped rather than blocking the run.
const eventBuffer = 256

// Controller bridges run events into the live UI program. It implements
// runner.RunObserver.
type Controller struct {
	events chan Event
}

// NewController returns a controller with a buffered event channel.
func NewController() *Controller {
	return &Controller{events: make(chan Event, eventBuffer)}
}

// Events exposes the event stream for the UI model.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Close releases the event channel. Call after the run has ended.
func (c *Controller) Close() {
	close(c.events)
}

// OnRunStart implements runner.RunObserver.
func (c *Controller) OnRunStart(runID string, corpusDir string, documents int) {
	c.send(Event{Kind: EventRunStart, RunID: runID, CorpusDir: corpusDir, Documents: documents})
}

// OnDocumentEvent implements runner.RunObserver.
func (c *Controller) OnDocumentEvent(event runner.DocumentEvent) {
	c.send(Event{Kind: EventDocument, Document: event})
}

// OnRunEnd implements runner.RunObserver.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.send(Event{Kind: EventRunEnd, RunID: results.RunID, Summary: results.Summary})
}

// send delivers an event without blocking the run goroutines.
func (c *Controller) send(event Event) {
	select {
	case c.events <- event:
	default:
	}
}
