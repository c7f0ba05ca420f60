package actions

import "fmt"

// InsufficientCandidatesError is returned when fewer candidates are eligible than the selection requires.
type InsufficientCandidatesError struct {
	Eligible int
	Required int
}

func (e *InsufficientCandidatesError) Error() string {
	return fmt.Sprintf("insufficient candidates: %d eligible, %d required", e.Eligible, e.Required)
}

// PolicyError is returned by NewSelector for an unusable policy.
type PolicyError struct {
	Message string
}

func (e *PolicyError) Error() string {
	return "invalid selection policy: " + e.Message
}
