package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"kycverify/internal/ratelimit/models"
	"kycverify/pkg/platform/httputil"
	"kycverify/pkg/platform/privacy"
	"kycverify/pkg/requestcontext"
)

//go:generate mockgen -source=ratelimit.go -destination=mocks/ratelimit-mocks.go -package=mocks RateLimiter

// RateLimiter decides whether a client IP may call an endpoint class.
type RateLimiter interface {
	CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error)
	Degraded() bool
}

// Middleware turns limiter decisions into headers and 429 responses.
type Middleware struct {
	limiter  RateLimiter
	logger   *slog.Logger
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns every RateLimit wrapper into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{limiter: limiter, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Warn("rate limiting disabled")
	}
	return m
}

// RateLimit wraps handlers of one endpoint class. A limiter error lets the
// request through; the KYC flow is worth more than the quota.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.disabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.limiter.CheckIPRateLimit(ctx, ip, class)
			if err != nil {
				m.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
					"class", class,
					"ip_prefix", privacy.AnonymizeIP(ip),
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			if m.limiter.Degraded() {
				h.Set("X-RateLimit-Status", "degraded")
			}

			if result.Allowed {
				next.ServeHTTP(w, r)
				return
			}
			h.Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, models.NewRateLimitExceeded(class, result.RetryAfter))
		})
	}
}
