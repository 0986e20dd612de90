package locating

import "fmt"

// LocateError represents a failure to query the document for candidate fields
type LocateError struct {
	Selector string
	Message  string
	Cause    error
}

func (e *LocateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("locate error for %s: %s: %v", e.Selector, e.Message, e.Cause)
	}
	return fmt.Sprintf("locate error for %s: %s", e.Selector, e.Message)
}

func (e *LocateError) Unwrap() error {
	return e.Cause
}
