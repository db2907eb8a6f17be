package runner

import (
	"fmt"
	"io"
	"time"
)

// defaultRounding keeps wall times readable in progress lines.
const defaultRounding = 10 * time.Millisecond

// VerboseObserver writes plain per-document progress lines. Safe for
// concurrent use.
type VerboseObserver struct {
	w io.Writer
}

// NewVerboseObserver wraps a writer for plain progress output.
func NewVerboseObserver(w io.Writer, workers int) *VerboseObserver {
	return &VerboseObserver{w: wrapVerboseWriter(workers, w)}
}

// OnRunStart implements RunObserver.
func (o *VerboseObserver) OnRunStart(runID string, corpusDir string, documents int) {
	if o.w == nil {
		return
	}
	fmt.Fprintf(o.w, "run %s: %d documents from %s\n", runID, documents, corpusDir)
}

// OnDocumentEvent implements RunObserver.
func (o *VerboseObserver) OnDocumentEvent(event DocumentEvent) {
	if o.w == nil || event.Type == DocumentQueued {
		return
	}
	switch event.Type {
	case DocumentRunning:
		fmt.Fprintf(o.w, "%s: fold %d: running\n", event.DocumentID, event.FoldIndex)
	case DocumentPassed:
		fmt.Fprintf(o.w, "%s: fold %d: passed in %s\n", event.DocumentID, event.FoldIndex, event.WallTime.Round(defaultRounding))
	case DocumentFailed:
		fmt.Fprintf(o.w, "%s: fold %d: failed (%s)\n", event.DocumentID, event.FoldIndex, event.Error)
	case DocumentError:
		fmt.Fprintf(o.w, "%s: fold %d: error: %s\n", event.DocumentID, event.FoldIndex, event.Error)
	}
}

// OnRunEnd implements RunObserver.
func (o *VerboseObserver) OnRunEnd(results Results) {
	if o.w == nil {
		return
	}
	fmt.Fprintf(o.w, "run %s: %d/%d passed (%.1f%%)\n",
		results.RunID, results.Summary.Passed, results.Summary.Documents,
		results.Summary.PassRate*100)
}
