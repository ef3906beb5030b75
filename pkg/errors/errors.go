package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes a review submission can end in.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrStorePrepare     = errors.New("store prepare failed")
	ErrStoreExec        = errors.New("store exec failed")
	ErrUnexpectedFault  = errors.New("unexpected fault")
	ErrInternal         = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
// Details carries per-field messages for validation failures; they are rendered
// as a list instead of Message.
type AppError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Status  int      `json:"-"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// MethodNotAllowed creates a 405 error.
func MethodNotAllowed(message string) *AppError {
	return &AppError{
		Code:    "METHOD_NOT_ALLOWED",
		Message: message,
		Status:  http.StatusMethodNotAllowed,
		Err:     ErrMethodNotAllowed,
	}
}

// Validation creates a 400 error carrying every failed field rule, in the
// order the rules were checked.
func Validation(details []string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: "request validation failed",
		Details: details,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// PrepareFailed creates a 500 error for a statement that could not be prepared.
// detail is the message reported by the driver.
func PrepareFailed(detail string, err error) *AppError {
	return &AppError{
		Code:    "STORE_PREPARE_FAILED",
		Message: "Failed to prepare statement: " + detail,
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrStorePrepare, err),
	}
}

// SubmitFailed creates a 500 error for a prepared insert that failed to execute.
// detail is the message reported by the driver.
func SubmitFailed(detail string, err error) *AppError {
	return &AppError{
		Code:    "STORE_EXEC_FAILED",
		Message: "Failed to submit review: " + detail,
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrStoreExec, err),
	}
}

// UnexpectedFault creates a 500 error for any other fault while submitting,
// such as a connection checkout failure or a panic. The client sees the same
// message shape as SubmitFailed.
func UnexpectedFault(detail string, err error) *AppError {
	return &AppError{
		Code:    "UNEXPECTED_FAULT",
		Message: "Failed to submit review: " + detail,
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrUnexpectedFault, err),
	}
}

// Internal creates a 500 error with a generic message.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
