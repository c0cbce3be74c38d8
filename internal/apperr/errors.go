// Package apperr defines the structured errors shared by the store, service and
// HTTP layers, and the mapping from each error code to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeForbidden    ErrorCode = "forbidden"
	// ErrCodeDuplicateBid is returned when (jobId, bidder email) already has a bid.
	ErrCodeDuplicateBid ErrorCode = "duplicate_bid"
	// ErrCodeInvalidTransition marks a refused status change or terminal-bid edit.
	ErrCodeInvalidTransition ErrorCode = "invalid_transition"
	// ErrCodeStaleStatus means the bid changed status between read and write.
	ErrCodeStaleStatus ErrorCode = "stale_status"
	ErrCodeInternal    ErrorCode = "internal"
	ErrCodeTimeout     ErrorCode = "timeout"
	ErrCodeCanceled    ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field is the request field that failed validation, when known.
	Field string
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

func newf(code ErrorCode, format string, args ...any) *AppError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &AppError{Code: code, Message: msg}
}

func NotFound(format string, args ...any) *AppError { return newf(ErrCodeNotFound, format, args...) }
func Conflict(format string, args ...any) *AppError { return newf(ErrCodeConflict, format, args...) }
func Validation(format string, args ...any) *AppError {
	return newf(ErrCodeValidation, format, args...)
}
func Unauthorized(format string, args ...any) *AppError {
	return newf(ErrCodeUnauthorized, format, args...)
}
func Forbidden(format string, args ...any) *AppError { return newf(ErrCodeForbidden, format, args...) }
func Internal(format string, args ...any) *AppError  { return newf(ErrCodeInternal, format, args...) }

// ValidationField creates a Validation error for a specific request field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// DuplicateBid is the conflict raised on a second bid for the same job and bidder.
func DuplicateBid() *AppError {
	return &AppError{Code: ErrCodeDuplicateBid, Message: "You already have placed bid on this job!"}
}

// InvalidTransition reports a refused status change; nothing was written.
func InvalidTransition(format string, args ...any) *AppError {
	return newf(ErrCodeInvalidTransition, format, args...)
}

// StaleStatus reports that a compare-and-swap status write found a different status.
func StaleStatus() *AppError {
	return &AppError{Code: ErrCodeStaleStatus, Message: "bid status changed concurrently, reload and retry"}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// GetCode returns the code of the first AppError in err's chain, or ErrCodeInternal.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool { return Is(err, ErrCodeNotFound) }

// StatusCanceled mirrors nginx's 499 for requests abandoned by the client.
const StatusCanceled = 499

// HTTPStatus maps an error code to the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeValidation, ErrCodeDuplicateBid:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict, ErrCodeInvalidTransition, ErrCodeStaleStatus:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeCanceled:
		return StatusCanceled
	default:
		return http.StatusInternalServerError
	}
}
