package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"ursbench/internal/aggregate"
)

// generatorOutput is the JSON document the external generator command
// writes to stdout for each evaluated document.
type generatorOutput struct {
	Success             bool    `json:"success"`
	Cost                float64 `json:"cost"`
	RequirementsCovered int     `json:"requirements_covered"`
	FailureReason       string  `json:"failure_reason"`
}

// executeDocument invokes the generator command for one document path
// and converts its output into a RunResult. Command failures become
// failed results; unparseable output is a run error.
func executeDocument(ctx context.Context, command []string, documentID, documentPath string, foldIndex int, timeout time.Duration, now func() time.Time) (aggregate.RunResult, error) {
	if len(command) == 0 {
		return aggregate.RunResult{}, fmt.Errorf("generator command is empty")
	}

	execCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	args := append(append([]string(nil), command[1:]...), documentPath)
	cmd := exec.CommandContext(execCtx, command[0], args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := now()
	runErr := cmd.Run()
	elapsed := now().Sub(started).Seconds()

	result := aggregate.RunResult{
		DocumentID:      documentID,
		FoldIndex:       foldIndex,
		DurationSeconds: elapsed,
	}

	if execCtx.Err() == context.DeadlineExceeded {
		result.FailureReason = "timeout"
		return result, nil
	}
	if ctx.Err() != nil {
		return aggregate.RunResult{}, ctx.Err()
	}
	if runErr != nil {
		result.FailureReason = firstLine(stderr.String(), "generator command failed")
		return result, nil
	}

	var output generatorOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return aggregate.RunResult{}, fmt.Errorf("parse generator output for %s: %w", documentID, err)
	}

	result.Success = output.Success
	result.Cost = output.Cost
	result.RequirementsCovered = output.RequirementsCovered
	if !output.Success {
		result.FailureReason = output.FailureReason
		if result.FailureReason == "" {
			result.FailureReason = "generation_failed"
		}
	}
	return result, nil
}

// firstLine returns the first non-empty line of text, or fallback.
func firstLine(text, fallback string) string {
	for _, line := range bytes.Split([]byte(text), []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 {
			return string(trimmed)
		}
	}
	return fallback
}
