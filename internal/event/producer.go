package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/review-service/internal/domain"
	pkgkafka "github.com/utafrali/review-service/pkg/kafka"
	"github.com/utafrali/review-service/pkg/logger"
)

// TopicReviewSubmitted is the topic for accepted reviews.
var TopicReviewSubmitted = pkgkafka.Topic("review", "submitted")

// Aggregate type constant. Reviews are keyed by the product they describe.
const AggregateTypeProduct = "product"

// Source identifier for events originating from the review service.
const SourceReviewService = "review-service"

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ProductID  int64  `json:"product_id"`
	UserID     int64  `json:"user_id"`
	Rating     int64  `json:"rating"`
	ReviewText string `json:"review_text"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ProductID:  review.ProductID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		ReviewText: review.ReviewText,
	}

	productID := strconv.FormatInt(review.ProductID, 10)
	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, productID, AggregateTypeProduct, SourceReviewService, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.Int64("product_id", review.ProductID),
		slog.Int64("user_id", review.UserID),
	)

	return nil
}

// Close flushes and closes the underlying Kafka writer.
func (p *Producer) Close() error {
	return p.kafka.Close()
}

// NoopPublisher drops every event. It is wired when publishing is disabled.
type NoopPublisher struct{}

// PublishReviewSubmitted does nothing.
func (NoopPublisher) PublishReviewSubmitted(context.Context, *domain.Review) error { return nil }
