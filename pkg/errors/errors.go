package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeValidation    = "VALIDATION"
	CodeLimitExceeded = "LIMIT_EXCEEDED"
	CodeDuplicate     = "DUPLICATE"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternal      = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// NotFound reports a missing entity. Absent records surface as 422,
// not 404, so clients can tell them apart from unknown routes.
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

// LimitExceeded rejects any request whose resolved page limit is over
// the hard ceiling, before a single store query is issued.
func LimitExceeded() *AppError {
	return &AppError{
		Code:    CodeLimitExceeded,
		Message: "Max request limit = 1000",
		Status:  http.StatusUnauthorized,
	}
}

// Duplicate reports a uniqueness violation caught by point lookup during
// a write (collection name or url already taken).
func Duplicate(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
	}
}

// Conflict reports an already-exists conflict on create (person wallet,
// item composite key).
func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Status:  http.StatusNotImplemented,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
