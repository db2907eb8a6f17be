package corpus

import "fmt"

// InvalidDocumentError reports a document whose content cannot be used.
type InvalidDocumentError struct {
	ID     string
	Path   string
	Reason string
}

// Error renders the document id, path, and reason.
func (err *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document %s (%s): %s", err.ID, err.Path, err.Reason)
}

// LoadError reports an I/O or structural failure for one corpus file.
type LoadError struct {
	Path string
	Err  error
}

// Error renders the offending path and cause.
func (err *LoadError) Error() string {
	return fmt.Sprintf("load corpus file %s: %v", err.Path, err.Err)
}

// Unwrap exposes the underlying cause.
func (err *LoadError) Unwrap() error {
	return err.Err
}
