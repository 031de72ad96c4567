package service

import (
	"context"
	"fmt"
	"log/slog"

	"kycverify/internal/ratelimit/metrics"
	"kycverify/internal/ratelimit/models"
	"kycverify/internal/ratelimit/ports"
	"kycverify/pkg/platform/circuit"
	"kycverify/pkg/platform/privacy"
	"kycverify/pkg/platform/sentinel"
)

// Config holds the per-class limits.
type Config struct {
	Limits map[models.EndpointClass]models.Limit
}

// DefaultConfig returns 30/min for verification and 100/min for lookups.
func DefaultConfig() *Config {
	return &Config{
		Limits: map[models.EndpointClass]models.Limit{
			models.ClassVerification: models.PerMinute(30),
			models.ClassLookup:       models.PerMinute(100),
		},
	}
}

// Service checks per-IP sliding-window limits against a primary bucket store.
// When a fallback is configured, primary errors are counted by a circuit
// breaker and the request is checked against the fallback instead.
type Service struct {
	buckets  ports.BucketStore
	fallback ports.BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
	config   *Config
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithFallback sets the store used while the primary is failing.
func WithFallback(store ports.BucketStore) Option {
	return func(s *Service) {
		s.fallback = store
	}
}

// WithBreaker replaces the default primary-store circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func New(buckets ports.BucketStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, fmt.Errorf("buckets store is required")
	}

	svc := &Service{
		buckets: buckets,
		logger:  slog.Default(),
		config:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.breaker == nil {
		svc.breaker = circuit.New("ratelimit-store")
	}
	for class, limit := range svc.config.Limits {
		if !class.IsValid() {
			return nil, fmt.Errorf("unknown endpoint class %q", class)
		}
		if limit.RequestsPerWindow <= 0 || limit.Window <= 0 {
			return nil, fmt.Errorf("limit for %s must be positive", class)
		}
	}
	return svc, nil
}

// CheckIPRateLimit consumes one request from the client's bucket for class.
func (s *Service) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := s.config.Limits[class]
	if !ok {
		return nil, fmt.Errorf("%w: limit for endpoint class %q", sentinel.ErrNotConfigured, class)
	}
	key := models.NewIPRateLimitKey(ip, class)

	result, err := s.allow(ctx, key, limit)
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementDecision(string(class), result.Allowed)
	if !result.Allowed {
		s.logger.InfoContext(ctx, "ip_rate_limit_exceeded",
			"ip_prefix", privacy.AnonymizeIP(ip),
			"endpoint_class", class,
			"limit", limit.RequestsPerWindow,
			"window_seconds", int(limit.Window.Seconds()),
		)
	}
	return result, nil
}

// Degraded reports whether checks are currently served by the fallback.
func (s *Service) Degraded() bool {
	return s.fallback != nil && s.breaker.IsOpen()
}

func (s *Service) allow(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, error) {
	result, err := s.buckets.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if err != nil {
		s.metrics.IncrementStoreErrors()
		_, change := s.breaker.RecordFailure()
		if change.Opened {
			s.metrics.SetDegraded(s.fallback != nil)
			s.logger.WarnContext(ctx, "rate limit store circuit opened", "breaker", s.breaker.Name(), "error", err)
		}
		if s.fallback == nil {
			return nil, fmt.Errorf("check rate limit: %w", err)
		}
		return s.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	}

	usePrimary, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.metrics.SetDegraded(false)
		s.logger.InfoContext(ctx, "rate limit store circuit closed", "breaker", s.breaker.Name())
	}
	if !usePrimary && s.fallback != nil {
		return s.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	}
	return result, nil
}
