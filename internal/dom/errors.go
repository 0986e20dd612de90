package dom

import "errors"

var (
	// ErrDetached is returned for operations on an element removed from its document.
	ErrDetached = errors.New("element is not attached to the document")

	// ErrNotSupported is returned when an element lacks the requested capability.
	ErrNotSupported = errors.New("operation not supported by element")

	// ErrEventUnsupported is returned when the requested event construction is unavailable.
	ErrEventUnsupported = errors.New("event construction not supported")
)
