package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidInput, ErrMethodNotAllowed, ErrStorePrepare, ErrStoreExec, ErrUnexpectedFault, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

func TestAppError_ErrorString(t *testing.T) {
	withInner := &AppError{Code: "STORE_EXEC_FAILED", Message: "boom", Err: fmt.Errorf("conn lost")}
	assert.Equal(t, "STORE_EXEC_FAILED: boom: conn lost", withInner.Error())

	bare := &AppError{Code: "METHOD_NOT_ALLOWED", Message: "nope"}
	assert.Equal(t, "METHOD_NOT_ALLOWED: nope", bare.Error())
}

func TestMethodNotAllowed(t *testing.T) {
	err := MethodNotAllowed("Only POST requests are allowed")

	assert.Equal(t, http.StatusMethodNotAllowed, err.Status)
	assert.Equal(t, "Only POST requests are allowed", err.Message)
	assert.True(t, errors.Is(err, ErrMethodNotAllowed))
	assert.Empty(t, err.Details)
}

func TestValidation_KeepsDetailOrder(t *testing.T) {
	details := []string{"first", "second", "third"}
	err := Validation(details)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "VALIDATION_ERROR", err.Code)
	assert.Equal(t, details, err.Details)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPrepareFailed(t *testing.T) {
	driverErr := fmt.Errorf("relation \"reviews\" does not exist")
	err := PrepareFailed("relation \"reviews\" does not exist", driverErr)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, `Failed to prepare statement: relation "reviews" does not exist`, err.Message)
	assert.True(t, errors.Is(err, ErrStorePrepare))
	assert.True(t, errors.Is(err, driverErr))
	assert.False(t, errors.Is(err, ErrStoreExec))
}

func TestSubmitFailed(t *testing.T) {
	driverErr := fmt.Errorf("null value in column")
	err := SubmitFailed("null value in column", driverErr)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Failed to submit review: null value in column", err.Message)
	assert.True(t, errors.Is(err, ErrStoreExec))
	assert.True(t, errors.Is(err, driverErr))
	assert.False(t, errors.Is(err, ErrUnexpectedFault))
}

func TestUnexpectedFault(t *testing.T) {
	cause := fmt.Errorf("too many clients already")
	err := UnexpectedFault("too many clients already", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "UNEXPECTED_FAULT", err.Code)
	assert.Equal(t, "Failed to submit review: too many clients already", err.Message)
	assert.True(t, errors.Is(err, ErrUnexpectedFault))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrStoreExec))
}

func TestInternal(t *testing.T) {
	inner := fmt.Errorf("kaboom")
	err := Internal(inner)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "an internal error occurred", err.Message)
	assert.Same(t, inner, err.Unwrap())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"app error", MethodNotAllowed("x"), http.StatusMethodNotAllowed},
		{"wrapped app error", fmt.Errorf("ctx: %w", Validation([]string{"a"})), http.StatusBadRequest},
		{"sentinel invalid input", fmt.Errorf("bad: %w", ErrInvalidInput), http.StatusBadRequest},
		{"sentinel method", ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"unknown", fmt.Errorf("something"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
