package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/review-service/internal/service"
	"github.com/utafrali/review-service/pkg/health"
	"github.com/utafrali/review-service/pkg/middleware"
)

// DefaultRequestTimeout bounds a request when RouterConfig leaves it unset.
const DefaultRequestTimeout = 10 * time.Second

// RouterConfig holds the request limits and access rules of the router.
// RequestTimeout must stay below the server's write timeout so that error
// bodies still reach the client.
type RouterConfig struct {
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	PprofCIDRs     []string
}

// NewRouter creates a chi router with all review service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("review"))
	r.Use(middleware.Tracing("review"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	// Review submission. All methods reach the handler so that it can
	// answer anything but POST with its own 405 body.
	reviewHandler := NewReviewHandler(reviewService, cfg.MaxBodyBytes, logger)

	r.HandleFunc("/", reviewHandler.SubmitReview)
	r.HandleFunc("/api/v1/reviews", reviewHandler.SubmitReview)

	return r
}
