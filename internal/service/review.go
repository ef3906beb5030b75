package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/review-service/internal/domain"
	"github.com/utafrali/review-service/internal/repository"
	apperrors "github.com/utafrali/review-service/pkg/errors"
)

// DefaultPublishTimeout bounds a single review.submitted publish.
const DefaultPublishTimeout = 2 * time.Second

// EventPublisher announces accepted reviews.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, review *domain.Review) error
}

// ReviewService implements the business logic for review submissions.
type ReviewService struct {
	repo           repository.ReviewRepository
	publisher      EventPublisher
	publishTimeout time.Duration
	logger         *slog.Logger
}

// NewReviewService creates a new review service. A non-positive
// publishTimeout falls back to DefaultPublishTimeout.
func NewReviewService(
	repo repository.ReviewRepository,
	publisher EventPublisher,
	publishTimeout time.Duration,
	logger *slog.Logger,
) *ReviewService {
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &ReviewService{
		repo:           repo,
		publisher:      publisher,
		publishTimeout: publishTimeout,
		logger:         logger,
	}
}

// Submit validates a submission, stores the sanitized review and publishes
// a review.submitted event. Publishing is best effort and bounded by the
// publish timeout: a failure is logged and the review still counts as
// submitted.
func (s *ReviewService) Submit(ctx context.Context, sub domain.ReviewSubmission) (*domain.Review, error) {
	if msgs := sub.Validate(); len(msgs) > 0 {
		return nil, apperrors.Validation(msgs)
	}

	review := sub.Review()
	if err := s.repo.Create(ctx, review); err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			return nil, apperrors.UnexpectedFault(err.Error(), err)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.Int64("product_id", review.ProductID),
		slog.Int64("user_id", review.UserID),
		slog.Int64("rating", review.Rating),
	)

	s.publish(ctx, review)

	return review, nil
}

// publish detaches from the request's cancellation so a client disconnect
// does not abort an event for a stored review.
func (s *ReviewService) publish(ctx context.Context, review *domain.Review) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.PublishReviewSubmitted(pubCtx, review); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review.submitted event",
			slog.Int64("product_id", review.ProductID),
			slog.String("error", err.Error()),
		)
	}
}
