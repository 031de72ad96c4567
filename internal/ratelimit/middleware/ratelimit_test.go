package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kycverify/internal/ratelimit/middleware/mocks"
	"kycverify/internal/ratelimit/models"
	"kycverify/pkg/testutil"
)

func newTestMiddleware(t *testing.T, opts ...Option) (*Middleware, *mocks.MockRateLimiter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(limiter, logger, opts...), limiter
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_Allowed(t *testing.T) {
	mw, limiter := newTestMiddleware(t)
	reset := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)
	limiter.EXPECT().CheckIPRateLimit(gomock.Any(), "203.0.113.7", models.ClassVerification).
		Return(&models.RateLimitResult{Allowed: true, Limit: 30, Remaining: 29, ResetAt: reset}, nil)
	limiter.EXPECT().Degraded().Return(false)

	var called bool
	req := testutil.WithClientIP(httptest.NewRequest(http.MethodPost, "/api/validate/kenyan-id", nil), "203.0.113.7")
	rr := testutil.DoRequest(mw.RateLimit(models.ClassVerification)(okHandler(&called)), req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "30", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", rr.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1767268860", rr.Header().Get("X-RateLimit-Reset"))
	assert.Empty(t, rr.Header().Get("X-RateLimit-Status"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	mw, limiter := newTestMiddleware(t)
	limiter.EXPECT().CheckIPRateLimit(gomock.Any(), "203.0.113.7", models.ClassLookup).
		Return(&models.RateLimitResult{Allowed: false, Limit: 100, ResetAt: time.Now().Add(42 * time.Second), RetryAfter: 42}, nil)
	limiter.EXPECT().Degraded().Return(false)

	var called bool
	req := testutil.WithClientIP(httptest.NewRequest(http.MethodPost, "/validate-phone", nil), "203.0.113.7")
	rr := testutil.DoRequest(mw.RateLimit(models.ClassLookup)(okHandler(&called)), req)

	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "42", rr.Header().Get("Retry-After"))
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	body := testutil.UnmarshalResponse[models.RateLimitExceededResponse](t, rr)
	assert.Equal(t, "rate_limit_exceeded", body.Error)
	assert.Equal(t, 42, body.RetryAfter)
	assert.Equal(t, models.ClassLookup, body.Class)
}

func TestRateLimit_DegradedHeader(t *testing.T) {
	mw, limiter := newTestMiddleware(t)
	limiter.EXPECT().CheckIPRateLimit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.RateLimitResult{Allowed: true, Limit: 30, Remaining: 10}, nil)
	limiter.EXPECT().Degraded().Return(true)

	var called bool
	rr := testutil.DoRequest(mw.RateLimit(models.ClassVerification)(okHandler(&called)),
		httptest.NewRequest(http.MethodPost, "/api/validate-kyc", nil))

	assert.True(t, called)
	assert.Equal(t, "degraded", rr.Header().Get("X-RateLimit-Status"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mw, limiter := newTestMiddleware(t)
	limiter.EXPECT().CheckIPRateLimit(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))

	var called bool
	rr := testutil.DoRequest(mw.RateLimit(models.ClassVerification)(okHandler(&called)),
		httptest.NewRequest(http.MethodPost, "/api/validate-kyc", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_Disabled(t *testing.T) {
	mw, _ := newTestMiddleware(t, WithDisabled(true))

	var called bool
	rr := testutil.DoRequest(mw.RateLimit(models.ClassVerification)(okHandler(&called)),
		httptest.NewRequest(http.MethodPost, "/api/validate-kyc", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}
