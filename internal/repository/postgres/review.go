package postgres

import (
	"context"

	"github.com/utafrali/review-service/internal/domain"
	"github.com/utafrali/review-service/pkg/database"
	apperrors "github.com/utafrali/review-service/pkg/errors"
)

// insertReviewSQL doubles as the prepared statement name.
const insertReviewSQL = `INSERT INTO reviews (product_id, user_id, review_text, rating) VALUES ($1, $2, $3, $4)`

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
// Each Create runs on its own connection, released before returning.
type ReviewRepository struct {
	db     database.Acquirer
	tracer *database.QueryTracer
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
// tracer may be nil.
func NewReviewRepository(db database.Acquirer, tracer *database.QueryTracer) *ReviewRepository {
	return &ReviewRepository{db: db, tracer: tracer}
}

// Create prepares the insert statement and executes it with the review's
// values.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) (err error) {
	ctx, end := r.tracer.Start(ctx, "InsertReview", insertReviewSQL)
	defer func() { end(err) }()

	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return apperrors.UnexpectedFault(database.ErrorMessage(err), err)
	}
	defer conn.Release()

	if _, err = conn.Prepare(ctx, insertReviewSQL, insertReviewSQL); err != nil {
		return apperrors.PrepareFailed(database.ErrorMessage(err), err)
	}

	_, err = conn.Exec(ctx, insertReviewSQL,
		review.ProductID,
		review.UserID,
		review.ReviewText,
		review.Rating,
	)
	if err != nil {
		return apperrors.SubmitFailed(database.ErrorMessage(err), err)
	}

	return nil
}
