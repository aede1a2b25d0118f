package errors

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized = "UNAUTHORIZED"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Business logic errors
	ErrCodeInvalidOperation = "INVALID_OPERATION"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Kind classifies a domain failure independently of the transport.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	// KindUnauthorized means the caller is known but lacks membership, ownership or authorship.
	KindUnauthorized
	// KindUnauthenticated means no principal is present.
	KindUnauthenticated
	KindConflict
	KindInvalidOperation
	KindUnavailable
)

// DomainError is returned by services for every expected failure.
type DomainError struct {
	Kind    Kind
	Message string
	Details interface{}
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(kind Kind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// NewDomainErrorWithDetails creates a new DomainError carrying structured details
func NewDomainErrorWithDetails(kind Kind, message string, details interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details}
}

// KindOf returns the Kind of err, or KindInternal when err is not a DomainError.
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond maps a service error onto the HTTP error envelope.
func Respond(c *gin.Context, err error) {
	var de *DomainError
	if !stderrors.As(err, &de) {
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		InternalError(c, "")
		return
	}

	switch de.Kind {
	case KindInvalidInput:
		BadRequestWithDetails(c, de.Message, de.Details)
	case KindNotFound:
		NotFound(c, de.Message)
	case KindUnauthorized:
		Forbidden(c, de.Message)
	case KindUnauthenticated:
		Unauthorized(c, de.Message)
	case KindConflict:
		Conflict(c, de.Message)
	case KindInvalidOperation:
		RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeInvalidOperation, de.Message))
	case KindUnavailable:
		ServiceUnavailable(c, de.Message)
	default:
		log.Printf("Internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		InternalError(c, "")
	}
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
