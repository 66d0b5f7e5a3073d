package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeTransport indicates the remote API was unreachable or the
	// connection failed before a response was received.
	ErrCodeTransport ErrorCode = "transport"
	// ErrCodeUnauthorized indicates the server rejected the bearer token.
	// Callers must treat this as "session expired": force logout and
	// return to the login destination.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeConflict indicates the server refused the request because an
	// equivalent pending record already exists.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input or a request the server
	// rejected as malformed.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeBadResponse indicates the server answered successfully but the
	// response shape was unusable (missing token, missing redirect URL).
	ErrCodeBadResponse ErrorCode = "bad_response"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeInternal indicates a server-side or unclassified failure.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError is a structured application error with a code, a human-readable
// message, an optional HTTP status, and an optional cause. It supports
// error wrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type.
	Code ErrorCode
	// Message is a human-readable error message, surfaced to the end user.
	Message string
	// Status is the HTTP status that produced the error, when relevant.
	Status int
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Transport creates a new Transport error.
func Transport(message string) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: message}
}

// Transportf creates a new Transport error with formatted message.
func Transportf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeTransport, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Status: 401}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message}
}

// Conflictf creates a new Conflict error with formatted message.
func Conflictf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// BadResponse creates a new BadResponse error.
func BadResponse(message string) *AppError {
	return &AppError{Code: ErrCodeBadResponse, Message: message}
}

// BadResponsef creates a new BadResponse error with formatted message.
func BadResponsef(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeBadResponse, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// WithStatus returns a copy of the error annotated with an HTTP status.
func (e *AppError) WithStatus(status int) *AppError {
	clone := *e
	clone.Status = status
	return &clone
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// FromStatus maps an HTTP status to the matching error code. Used when a
// non-success response carries no more specific classification.
func FromStatus(status int) ErrorCode {
	switch {
	case status == 401:
		return ErrCodeUnauthorized
	case status == 404:
		return ErrCodeNotFound
	case status == 409:
		return ErrCodeConflict
	case status >= 400 && status < 500:
		return ErrCodeValidation
	default:
		return ErrCodeInternal
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsTransport checks if an error is a Transport error.
func IsTransport(err error) bool {
	return isCode(err, ErrCodeTransport)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isCode(err, ErrCodeUnauthorized)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsBadResponse checks if an error is a BadResponse error.
func IsBadResponse(err error) bool {
	return isCode(err, ErrCodeBadResponse)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the HTTP status from an error, or 0 if not set.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
