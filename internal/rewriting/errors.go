package rewriting

import "fmt"

// RenderError is returned when a renderer cannot produce text that keeps the
// selected actions intact.
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render failed: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
