package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoProfile is returned when a fill is requested without a profile.
var ErrNoProfile = errors.New("no profile data provided")

// CycleError represents a fill or scan cycle that could not run to completion
type CycleError struct {
	Op      string
	CycleID string
	Message string
	Cause   error
}

func (e *CycleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s cycle failed: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s cycle failed: %s", e.Op, e.Message)
}

func (e *CycleError) Unwrap() error {
	return e.Cause
}
