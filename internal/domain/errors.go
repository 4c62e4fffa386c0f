package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is implemented by domain errors that map to an HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

type (
	// NotFoundError indicates a referenced entity does not exist.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates a business-rule violation: bad input, a
	// missing precondition, or the wrong state for a requested transition.
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates an authentication failure.
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is bridges the typed errors to their sentinels so callers can use
// errors.Is() without knowing the concrete type.
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// ExternalServiceError represents a non-success response from the signature
// provider. It carries the provider's HTTP status and response body so the
// caller can decide whether to retry.
type ExternalServiceError struct {
	Status int
	Body   string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("signature provider returned %d: %s", e.Status, e.Body)
}

func (e *ExternalServiceError) StatusCode() int { return http.StatusBadGateway }
