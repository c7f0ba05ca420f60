// Package household validates household profiles and loads them from JSON or YAML documents.
package household

import "fmt"

// InvalidProfileError reports a missing or malformed profile field.
// It is returned before any computation runs, so callers never see partial results.
type InvalidProfileError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidProfileError) Error() string {
	msg := fmt.Sprintf("invalid profile: %s %s", e.Field, e.Message)
	if e.Field == "" {
		msg = fmt.Sprintf("invalid profile: %s", e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *InvalidProfileError) Unwrap() error {
	return e.Cause
}

// LoadError represents an error during file I/O or document parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
