package profile

import "fmt"

// ImportError represents a profile document that could not be read or accepted
type ImportError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("profile import error (%s): %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("profile import error (%s): %s", e.Source, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
