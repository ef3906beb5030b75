package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/review-service/pkg/config"
	"github.com/utafrali/review-service/pkg/database"
	"github.com/utafrali/review-service/pkg/tracing"
)

// ServiceName identifies the review service in logs, traces and events.
const ServiceName = "review-service"

// maxPublishTimeoutMS keeps a publish well inside the HTTP request timeout.
const maxPublishTimeoutMS = 5000

// Config holds all configuration for the review service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort     int   `env:"REVIEW_HTTP_PORT" envDefault:"8080"`
	MaxBodyBytes int64 `env:"REVIEW_MAX_BODY_BYTES" envDefault:"1048576"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"ecommerce"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"ecommerce_secret"`
	PostgresDB   string `env:"REVIEW_DB_NAME" envDefault:"review_db"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	DBMaxConns            int32 `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns            int32 `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetimeMins int   `env:"DB_MAX_CONN_LIFETIME_MINUTES" envDefault:"60"`
	DBMaxConnIdleTimeMins int   `env:"DB_MAX_CONN_IDLE_TIME_MINUTES" envDefault:"30"`
	SlowQueryMS           int   `env:"LOG_SLOW_QUERY_MS" envDefault:"500"`

	// Kafka
	EventsEnabled    bool     `env:"EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	PublishTimeoutMS int      `env:"EVENTS_PUBLISH_TIMEOUT_MS" envDefault:"2000"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Pprof
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128,10.0.0.0/8,172.16.0.0/12,192.168.0.0/16" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load review config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %d", c.PostgresPort)
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.PostgresDB == "" {
		return fmt.Errorf("REVIEW_DB_NAME is required")
	}
	if c.DBMaxConns < 1 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("invalid pool size: min %d, max %d", c.DBMinConns, c.DBMaxConns)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("REVIEW_MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %g", c.OTELSampleRate)
	}
	if c.PublishTimeoutMS < 1 || c.PublishTimeoutMS > maxPublishTimeoutMS {
		return fmt.Errorf("EVENTS_PUBLISH_TIMEOUT_MS must be between 1 and %d, got %d", maxPublishTimeoutMS, c.PublishTimeoutMS)
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
	}
	return nil
}

// Postgres returns the connection pool settings.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.DBMaxConns,
		MinConns:        c.DBMinConns,
		MaxConnLifetime: time.Duration(c.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(c.DBMaxConnIdleTimeMins) * time.Minute,
	}
}

// SlowQueryThreshold returns the duration above which statements are logged.
func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

// PublishTimeout returns the limit on a single event publish.
func (c *Config) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutMS) * time.Millisecond
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	cfg := tracing.DefaultConfig(ServiceName)
	cfg.Environment = c.Environment
	cfg.OTLPEndpoint = c.OTELEndpoint
	cfg.SampleRate = c.OTELSampleRate
	cfg.Enabled = c.OTELEnabled
	return cfg
}
