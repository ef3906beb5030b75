package database

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/utafrali/review-service/pkg/database"

// QueryTracer wraps statements in client spans, records their duration and
// logs the ones slower than SlowThreshold. The zero value traces without slow
// query logging.
type QueryTracer struct {
	SlowThreshold time.Duration
	Logger        *slog.Logger
}

// NewQueryTracer returns a tracer that warns on logger about statements
// taking at least threshold. A zero threshold disables the warning.
func NewQueryTracer(threshold time.Duration, logger *slog.Logger) *QueryTracer {
	return &QueryTracer{SlowThreshold: threshold, Logger: logger}
}

// Start opens a span for one statement. The returned function must be called
// with the statement's outcome:
//
//	ctx, end := tracer.Start(ctx, "InsertReview", insertSQL)
//	defer func() { end(err) }()
func (t *QueryTracer) Start(ctx context.Context, operation, statement string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "db."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemPostgreSQL,
			semconv.DBOperation(operation),
			semconv.DBStatement(statement),
		),
	)

	return ctx, func(err error) {
		elapsed := time.Since(start)
		outcome := "ok"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		queryDuration.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())

		if t == nil || t.SlowThreshold <= 0 || t.Logger == nil || elapsed < t.SlowThreshold {
			return
		}
		attrs := []any{
			slog.String("operation", operation),
			slog.String("statement", statement),
			slog.Duration("duration", elapsed),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		t.Logger.WarnContext(ctx, "slow query detected", attrs...)
	}
}
