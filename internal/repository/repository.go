package repository

import (
	"context"

	"github.com/utafrali/review-service/internal/domain"
)

// ReviewRepository defines the interface for review persistence operations.
type ReviewRepository interface {
	// Create inserts a sanitized review into the store. Failures are
	// returned as *apperrors.AppError carrying the driver message.
	Create(ctx context.Context, review *domain.Review) error
}
