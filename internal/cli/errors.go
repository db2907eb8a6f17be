package cli

import (
	"errors"
	"fmt"
	"io"

	"ursbench/internal/corpus"
	"ursbench/internal/folds"
	"ursbench/internal/stats"
)

// errorKind classifies component errors for CLI messages.
func errorKind(err error) string {
	var invalid *corpus.InvalidDocumentError
	var load *corpus.LoadError
	var strat *folds.InsufficientStratificationError
	var sample *stats.InsufficientSampleError
	switch {
	case errors.As(err, &invalid):
		return "invalid document"
	case errors.As(err, &load):
		return "corpus load"
	case errors.As(err, &strat):
		return "insufficient stratification data"
	case errors.As(err, &sample):
		return "insufficient sample"
	default:
		return ""
	}
}

// failf prints a command failure, naming the error kind when known.
func failf(stderr io.Writer, action string, err error) int {
	if kind := errorKind(err); kind != "" {
		fmt.Fprintf(stderr, "%s failed (%s): %v\n", action, kind, err)
		return ExitError
	}
	fmt.Fprintf(stderr, "%s failed: %v\n", action, err)
	return ExitError
}
