package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/review-service/internal/config"
	"github.com/utafrali/review-service/internal/service"
	pkgkafka "github.com/utafrali/review-service/pkg/kafka"
)

func TestServerTimeouts_HandlerFinishesBeforeWriteDeadline(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Less(t, requestTimeout, writeTimeout)
	assert.Less(t, cfg.PublishTimeout(), requestTimeout)
	assert.Less(t, service.DefaultPublishTimeout, requestTimeout)
}

func TestPingKafkaWithRetry_StopsOnCanceledContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"127.0.0.1:1"}), logger)
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pingKafkaWithRetry(ctx, producer, logger)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled during retry")
}

func TestPingKafkaWithRetry_NoBrokers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	producer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(nil), logger)
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pingKafkaWithRetry(ctx, producer, logger)

	require.Error(t, err)
}
