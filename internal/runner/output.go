package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root      string
	CorpusKey string
	RunID     string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, corpusKey, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(corpusKey) == "" {
		return OutputPaths{}, fmt.Errorf("corpus key is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{
		Root:      root,
		CorpusKey: corpusKey,
		RunID:     runID,
	}, nil
}

// RunDir returns the directory for a specific run. The corpus key is
// truncated to keep paths readable; twelve hex digits are ample to keep
// corpora distinct in one output root.
func (o OutputPaths) RunDir() string {
	key := o.CorpusKey
	if len(key) > 12 {
		key = key[:12]
	}
	return filepath.Join(o.Root, key, o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// FoldsPath returns the path to fold_assignments.json.
func (o OutputPaths) FoldsPath() string {
	return filepath.Join(o.RunDir(), "fold_assignments.json")
}
