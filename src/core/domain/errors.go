// Package domain contains domain entities, value objects, and domain-specific errors.
// This package should have no external dependencies except the standard library.
package domain

import (
	"errors"
	"fmt"
)

// Domain error types for consistent error handling across the application.
// These errors represent business rule violations and domain constraints.

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when authentication is required but missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the user lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when there's a conflict with the current state.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the backing store fails for any reason
	// other than a constraint violation. The raw cause is logged, never shown.
	ErrUnavailable = errors.New("backend unavailable")
)

// Machine-readable error codes carried by DomainError and echoed in
// API error responses. Constraint-violation translation relies on the
// DUPLICATE_* and REFERENCE_ERROR codes.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeAuthFailed        = "AUTHENTICATION_FAILED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicateUsername = "DUPLICATE_USERNAME"
	CodeDuplicateEmail    = "DUPLICATE_EMAIL"
	CodeDuplicateResource = "DUPLICATE_RESOURCE"
	CodeReferenceError    = "REFERENCE_ERROR"
	CodeUnavailable       = "BACKEND_UNAVAILABLE"
)

// DomainError wraps a base error with additional context.
// It provides a standard way to add details to domain errors.
type DomainError struct {
	// Base is the underlying error type (e.g., ErrNotFound)
	Base error

	// Code is a machine-readable error code; empty means "use the
	// default code for Base".
	Code string

	// Message provides human-readable context
	Message string

	// Field indicates which field caused the error (for validation errors)
	Field string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Code:    CodeNotFound,
		Message: resource,
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewDuplicateError creates a conflict error with a specific duplicate code
// (CodeDuplicateUsername, CodeDuplicateEmail or CodeDuplicateResource).
func NewDuplicateError(code, message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Code:    code,
		Message: message,
	}
}

// NewReferenceError creates a client error for a dangling foreign key.
func NewReferenceError(message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Code:    CodeReferenceError,
		Message: message,
	}
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{
		Base:    ErrForbidden,
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewUnauthorizedError creates an unauthorized error with context.
func NewUnauthorizedError(code, message string) *DomainError {
	return &DomainError{
		Base:    ErrUnauthorized,
		Code:    code,
		Message: message,
	}
}

// NewUnavailableError wraps an infrastructure failure. The message is safe
// for clients; the cause stays in logs.
func NewUnavailableError(message string) *DomainError {
	return &DomainError{
		Base:    ErrUnavailable,
		Code:    CodeUnavailable,
		Message: message,
	}
}

// ErrorCode extracts the machine code from an error, or "" if it has none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnauthorized checks if an error is unauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsUnavailable checks if an error is a backend failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
