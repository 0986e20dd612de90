package filling

import (
	"fmt"

	"github.com/jonathan/job-autofill/internal/types"
)

// WriteError represents a value that could not be written to a field
type WriteError struct {
	Category types.Category
	Message  string
	Cause    error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write error for %s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("write error for %s: %s", e.Category, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
