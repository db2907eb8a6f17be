package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadResults reads run results from a JSON file: either a bare array of
// results or a run document with a "results" field.
func LoadResults(path string) ([]RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var results []RunResult
	if err := json.Unmarshal(data, &results); err == nil {
		return results, nil
	}

	var wrapped struct {
		Results []RunResult `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}
	return wrapped.Results, nil
}
