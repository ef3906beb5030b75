package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/utafrali/review-service/internal/domain"
	"github.com/utafrali/review-service/internal/service"
	apperrors "github.com/utafrali/review-service/pkg/errors"
	"github.com/utafrali/review-service/pkg/httputil"
)

const (
	msgMethodNotAllowed = "Only POST requests are allowed"
	msgSubmitted        = "Review submitted successfully"
)

// ReviewHandler handles HTTP requests for review submission.
type ReviewHandler struct {
	service      *service.ReviewService
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler. Request bodies larger
// than maxBodyBytes are treated as undecodable.
func NewReviewHandler(svc *service.ReviewService, maxBodyBytes int64, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service:      svc,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// SubmitReview handles POST / and POST /api/v1/reviews. Every other method
// gets a 405 without the body being read.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.WriteError(w, r, apperrors.MethodNotAllowed(msgMethodNotAllowed), h.logger)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.DebugContext(r.Context(), "discarding unreadable request body",
			slog.String("error", err.Error()),
		)
		body = nil
	}

	if err := h.submit(r, domain.ParseReviewSubmission(body)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, msgSubmitted)
}

// submit runs the service call. Panics and errors that carry no response
// shape of their own are reported as unexpected faults.
func (h *ReviewHandler) submit(r *http.Request, sub domain.ReviewSubmission) (err error) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		h.logger.ErrorContext(r.Context(), "panic during review submission",
			slog.Any("panic", rec),
			slog.String("stack", string(debug.Stack())),
		)
		err = apperrors.UnexpectedFault(fmt.Sprint(rec), fmt.Errorf("panic: %v", rec))
	}()

	_, err = h.service.Submit(r.Context(), sub)
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.UnexpectedFault(err.Error(), err)
}
