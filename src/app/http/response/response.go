// Package response defines consistent HTTP error response structures.
// All API error responses should use these types for consistency.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jokehub/src/core/domain"
)

// Error represents an error response.
type Error struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Field is the field that caused the error (for validation errors)
	Field string `json:"field,omitempty"`

	// RequestID is the request ID for debugging
	RequestID string `json:"request_id,omitempty"`
}

// NoContent sends a 204 response with no body.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      "BAD_REQUEST",
			Message:   message,
			RequestID: requestID,
		},
	})
}

// ValidationError sends a 400 response for validation failures.
func ValidationError(c *gin.Context, field, message, requestID string) {
	c.JSON(http.StatusBadRequest, Error{
		Error: ErrorDetail{
			Code:      domain.CodeValidation,
			Message:   message,
			Field:     field,
			RequestID: requestID,
		},
	})
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusNotFound, Error{
		Error: ErrorDetail{
			Code:      domain.CodeNotFound,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Unauthorized sends a 401 response with the given code.
func Unauthorized(c *gin.Context, code, message, requestID string) {
	if code == "" {
		code = domain.CodeUnauthorized
	}
	c.JSON(http.StatusUnauthorized, Error{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Forbidden sends a 403 response.
func Forbidden(c *gin.Context, message, requestID string) {
	c.JSON(http.StatusForbidden, Error{
		Error: ErrorDetail{
			Code:      domain.CodeForbidden,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Conflict sends a 409 response with the given duplicate code.
func Conflict(c *gin.Context, code, message, requestID string) {
	if code == "" {
		code = domain.CodeDuplicateResource
	}
	c.JSON(http.StatusConflict, Error{
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	})
}

// Unavailable sends a 500 response for a backend failure. The message is
// always generic; internal detail belongs in logs.
func Unavailable(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, Error{
		Error: ErrorDetail{
			Code:      domain.CodeUnavailable,
			Message:   "The service is temporarily unavailable",
			RequestID: requestID,
		},
	})
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, requestID string) {
	c.JSON(http.StatusInternalServerError, Error{
		Error: ErrorDetail{
			Code:      "INTERNAL_ERROR",
			Message:   "An unexpected error occurred",
			RequestID: requestID,
		},
	})
}

// FromDomainError converts a domain error to an appropriate HTTP response.
// This centralizes error handling and ensures consistent error responses.
// Unknown errors are reported as a generic backend failure.
func FromDomainError(c *gin.Context, err error, requestID string) {
	code := domain.ErrorCode(err)
	message := err.Error()
	field := ""
	var de *domain.DomainError
	if errors.As(err, &de) {
		message = de.Message
		field = de.Field
	}

	switch {
	case domain.IsNotFound(err):
		NotFound(c, err.Error(), requestID)
	case domain.IsValidationError(err):
		if code == "" {
			code = domain.CodeValidation
		}
		c.JSON(http.StatusBadRequest, Error{
			Error: ErrorDetail{
				Code:      code,
				Message:   message,
				Field:     field,
				RequestID: requestID,
			},
		})
	case domain.IsConflict(err):
		Conflict(c, code, message, requestID)
	case domain.IsForbidden(err):
		Forbidden(c, message, requestID)
	case domain.IsUnauthorized(err):
		Unauthorized(c, code, message, requestID)
	default:
		Unavailable(c, requestID)
	}
}
