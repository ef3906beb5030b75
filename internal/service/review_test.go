package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-service/internal/domain"
	apperrors "github.com/utafrali/review-service/pkg/errors"
)

// --- Mocks ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReviewService(repo *mockReviewRepository, pub *mockPublisher) *ReviewService {
	return NewReviewService(repo, pub, time.Second, newTestLogger())
}

func parse(body string) domain.ReviewSubmission {
	return domain.ParseReviewSubmission([]byte(body))
}

// --- Tests ---

func TestSubmit_Success(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)
	ctx := context.Background()

	want := &domain.Review{ProductID: 3, UserID: 7, Rating: 5, ReviewText: "&lt;b&gt;great&lt;/b&gt;"}
	repo.On("Create", ctx, want).Return(nil)
	pub.On("PublishReviewSubmitted", mock.Anything, want).Return(nil)

	review, err := svc.Submit(ctx, parse(`{"product_id": 3, "user_id": 7, "rating": 5, "review_text": "<b>great</b>"}`))

	require.NoError(t, err)
	assert.Equal(t, want, review)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmit_ValidationError(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)

	review, err := svc.Submit(context.Background(), parse(`{"product_id": 1, "user_id": 1, "rating": 0}`))

	assert.Nil(t, review)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{domain.MsgInvalidRating}, appErr.Details)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	pub.AssertNotCalled(t, "PublishReviewSubmitted", mock.Anything, mock.Anything)
}

func TestSubmit_RepositoryError(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)
	ctx := context.Background()

	storeErr := apperrors.PrepareFailed("syntax error", errors.New("syntax error"))
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(storeErr)

	review, err := svc.Submit(ctx, parse(`{"product_id": 1, "user_id": 1, "rating": 1}`))

	assert.Nil(t, review)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorePrepare)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to prepare statement: syntax error", appErr.Message)
	pub.AssertNotCalled(t, "PublishReviewSubmitted", mock.Anything, mock.Anything)
}

func TestSubmit_PublishFailureIsIgnored(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)
	pub.On("PublishReviewSubmitted", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(errors.New("broker down"))

	review, err := svc.Submit(ctx, parse(`{"product_id": "2", "user_id": "9", "rating": 4.9}`))

	require.NoError(t, err)
	assert.Equal(t, &domain.Review{ProductID: 2, UserID: 9, Rating: 4}, review)
	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestSubmit_PlainRepositoryErrorKeepsFaultText(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(errors.New("connection reset by peer"))

	review, err := svc.Submit(ctx, parse(`{"product_id": 1, "user_id": 1, "rating": 1}`))

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperrors.ErrUnexpectedFault)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Failed to submit review: connection reset by peer", appErr.Message)
}

// stalledPublisher blocks until its context ends, like a writer stuck on an
// unreachable broker.
type stalledPublisher struct {
	deadlineSet bool
}

func (p *stalledPublisher) PublishReviewSubmitted(ctx context.Context, _ *domain.Review) error {
	_, p.deadlineSet = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestSubmit_StalledPublishIsBounded(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := &stalledPublisher{}
	svc := NewReviewService(repo, pub, 50*time.Millisecond, newTestLogger())
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil)

	start := time.Now()
	review, err := svc.Submit(ctx, parse(`{"product_id": 3, "user_id": 7, "rating": 5}`))
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, int64(3), review.ProductID)
	assert.True(t, pub.deadlineSet)
	assert.Less(t, elapsed, 2*time.Second)
	repo.AssertExpectations(t)
}

func TestSubmit_PublishSurvivesCanceledRequest(t *testing.T) {
	repo := new(mockReviewRepository)
	pub := new(mockPublisher)
	svc := newTestReviewService(repo, pub)

	ctx, cancel := context.WithCancel(context.Background())
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil).Run(func(mock.Arguments) {
		cancel()
	})
	pub.On("PublishReviewSubmitted", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), mock.AnythingOfType("*domain.Review")).Return(nil)

	_, err := svc.Submit(ctx, parse(`{"product_id": 1, "user_id": 1, "rating": 1}`))

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestNewReviewService_DefaultPublishTimeout(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepository), new(mockPublisher), 0, newTestLogger())

	assert.Equal(t, DefaultPublishTimeout, svc.publishTimeout)
}
