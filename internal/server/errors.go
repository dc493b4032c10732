package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidCredentials reports a failed login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrNotFound reports that a stored document does not exist. Kind names
// the document class ("resume", "job description", "evaluation").
type ErrNotFound struct {
	Kind string
	ID   uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ErrValidation reports a request field that failed validation.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus maps an error to the status code its response should
// carry. Wrapped errors are unwrapped; anything unrecognized is a 500.
func HTTPStatus(err error) int {
	var (
		credentials *ErrInvalidCredentials
		notFound    *ErrNotFound
		validation  *ErrValidation
	)
	switch {
	case errors.As(err, &credentials):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
