package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode is a stable machine-readable error code
type ErrorCode string

const (
	CodeBadRequest    ErrorCode = "BAD_REQUEST"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeAlreadyBooked ErrorCode = "ALREADY_BOOKED"
	CodeInvalidScore  ErrorCode = "INVALID_SCORE"
	CodeUnavailable   ErrorCode = "UNAVAILABLE"
	CodeInternal      ErrorCode = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    CodeBadRequest,
		Message: message,
		Err:     err,
	}
}

func AlreadyBooked(err error) *AppError {
	return &AppError{
		Code:    CodeAlreadyBooked,
		Message: "slot already booked",
		Err:     err,
	}
}

func InvalidScore(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInvalidScore,
		Message: message,
		Err:     err,
	}
}

func Unavailable(err error) *AppError {
	return &AppError{
		Code:    CodeUnavailable,
		Message: "service temporarily unavailable",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// FromStore classifies a failed store call. A deadline or cancellation
// means the store could not be reached in time; the caller may retry
// with backoff. Anything else is internal.
func FromStore(err error) *AppError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Unavailable(err)
	}
	return Internal(err)
}

// AsAppError unwraps err into an *AppError, falling back to Internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
