// Package apperr defines the error kinds the services surface and the
// HTTP status each one maps to at the API boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidCredentials is returned for any authentication failure.
// It deliberately does not say whether the account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// DuplicateError reports a uniqueness violation on the named field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

// NotFoundError reports a missing entity. Ownership-filtered lookups
// return the same error whether the entity is absent or belongs to
// someone else.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// StateError reports an illegal lifecycle transition.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

// StoreError wraps a persistence failure. These are transient server
// faults, never the client's doing.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// HTTPStatus maps an error to the response status the API should use.
// Unknown errors are treated as server faults.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		duplicate  *DuplicateError
		notFound   *NotFoundError
		state      *StateError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &state):
		return http.StatusBadRequest
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
