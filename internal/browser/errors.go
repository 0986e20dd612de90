package browser

import "fmt"

// BrowserError represents a failure driving the browser
type BrowserError struct {
	URL     string
	Message string
	Cause   error
}

func (e *BrowserError) Error() string {
	target := e.URL
	if target == "" {
		target = "browser"
	}
	if e.Cause != nil {
		return fmt.Sprintf("browser error for %s: %s: %v", target, e.Message, e.Cause)
	}
	return fmt.Sprintf("browser error for %s: %s", target, e.Message)
}

func (e *BrowserError) Unwrap() error {
	return e.Cause
}
