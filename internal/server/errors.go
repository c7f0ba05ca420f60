package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/terrago/carbon-advisor/internal/household"
)

// ErrAssessmentNotFound indicates no stored assessment has the requested id
type ErrAssessmentNotFound struct {
	ID uuid.UUID
}

func (e *ErrAssessmentNotFound) Error() string {
	return fmt.Sprintf("assessment not found: %s", e.ID)
}

// ErrStoreUnavailable indicates the server runs without a database
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "assessment storage is not configured"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Anything unrecognised, including actions.InsufficientCandidatesError, is a 500.
func HTTPStatus(err error) int {
	var (
		invalidProfile *household.InvalidProfileError
		loadErr        *household.LoadError
		validation     *ErrValidation
		notFound       *ErrAssessmentNotFound
		unavailable    *ErrStoreUnavailable
	)
	switch {
	case errors.As(err, &invalidProfile), errors.As(err, &loadErr), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// publicError builds the response body for err. Server errors hide their details.
func publicError(err error, status int) errorBody {
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		return errorBody{Error: "internal server error"}
	}
	body := errorBody{Error: err.Error()}
	var invalidProfile *household.InvalidProfileError
	if errors.As(err, &invalidProfile) {
		body.Field = invalidProfile.Field
	}
	return body
}
