package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/review-service/pkg/errors"
	"github.com/utafrali/review-service/pkg/logger"
)

// ErrorResponse is the body of every single-message failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse lists every failed field rule, in check order.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

// SuccessResponse is the body of a successful write.
type SuccessResponse struct {
	Success string `json:"success"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, the error is dropped: headers are already sent.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the JSON body for err. AppErrors that carry details are
// rendered as an error list, other AppErrors as their message. Anything else
// becomes a generic error with the status from apperrors.HTTPStatus.
// Server-side failures are logged with the request-scoped logger when the
// RequestLogger middleware is mounted, otherwise with fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() && fallback != nil {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "request failed",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if len(appErr.Details) > 0 {
			WriteJSON(w, appErr.Status, ValidationResponse{Errors: appErr.Details})
			return
		}
		WriteJSON(w, appErr.Status, ErrorResponse{Error: appErr.Message})
		return
	}

	message := "an internal error occurred"
	if status == http.StatusBadRequest || status == http.StatusMethodNotAllowed {
		message = err.Error()
	}
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteSuccess writes a SuccessResponse with the given status.
func WriteSuccess(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, SuccessResponse{Success: message})
}
