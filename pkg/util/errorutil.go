package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeInvalidCreds      = "INVALID_CREDENTIALS"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidStatus     = "INVALID_TICKET_STATUS"
	CodeInvalidAction     = "INVALID_ACTION"
	CodeInvalidUserType   = "INVALID_USER_TYPE"
	CodeRatingRequired    = "RATING_REQUIRED"
	CodeNoMatchingTickets = "NO_MATCHING_TICKETS"
	CodeInvalidTarget     = "INVALID_TARGET_USER"
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL_SERVER_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    []string
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details ...string) *DomainError {
	if len(details) == 0 {
		details = []string{message}
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details ...string) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details...)
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized)
}

func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCreds, "invalid username or password", http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden)
}

func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict)
}

func NewInvalidStatus(message string) error {
	return NewDomainError(CodeInvalidStatus, message, http.StatusBadRequest)
}

func NewInvalidAction(message string) error {
	return NewDomainError(CodeInvalidAction, message, http.StatusBadRequest)
}

func NewInvalidUserType(message string) error {
	return NewDomainError(CodeInvalidUserType, message, http.StatusBadRequest)
}

func NewRatingRequired() error {
	return NewDomainError(CodeRatingRequired, "rating (1-5) is required when closing a resolved ticket", http.StatusBadRequest)
}

func NewNoMatchingTickets(message string) error {
	return NewDomainError(CodeNoMatchingTickets, message, http.StatusForbidden)
}

func NewInvalidTarget(message string) error {
	return NewDomainError(CodeInvalidTarget, message, http.StatusBadRequest)
}

func NewTooManyRequests(message string) error {
	return NewDomainError(CodeTooManyRequests, message, http.StatusTooManyRequests)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Details:    []string{"there has been an internal server error"},
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewInternalError(err).(*DomainError)
}

// MapError wraps unknown errors as internal errors and passes domain errors through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// CodeOf returns the taxonomy code carried by err.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}
