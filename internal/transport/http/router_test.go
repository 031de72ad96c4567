package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"kycverify/internal/platform/metrics"
	rlmodels "kycverify/internal/ratelimit/models"
	"kycverify/internal/verification/handler"
	"kycverify/internal/verification/handler/mocks"
	"kycverify/internal/verification/models"
	"kycverify/pkg/testutil"
)

// classRecorder tags responses with the endpoint class it was asked to limit.
type classRecorder struct{}

func (classRecorder) RateLimit(class rlmodels.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test-Class", string(class))
			next.ServeHTTP(w, r)
		})
	}
}

type routerFixture struct {
	router  http.Handler
	service *mocks.MockService
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, checks ...ReadinessCheck) routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	router := NewRouter(Dependencies{
		Verification:   handler.New(svc, logger, 1<<20),
		RateLimiter:    classRecorder{},
		Readiness:      checks,
		Logger:         logger,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return routerFixture{router: router, service: svc, metrics: m}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/health", nil))

	testutil.AssertStatusOK(t, rr)
	body := testutil.UnmarshalResponse[healthResponse](t, rr)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "kenyan-id-validation", body.Service)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.RequestsTotal.WithLabelValues("/health", "GET", "200")))
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	t.Run("all dependencies up", func(t *testing.T) {
		f := newFixture(t, ReadinessCheck{Name: "sidecars", Check: ok}, ReadinessCheck{Name: "redis", Check: ok})

		rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/ready", nil))

		testutil.AssertStatusOK(t, rr)
		body := testutil.UnmarshalResponse[readyResponse](t, rr)
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, map[string]string{"sidecars": "ok", "redis": "ok"}, body.Checks)
	})

	t.Run("a dependency down", func(t *testing.T) {
		f := newFixture(t, ReadinessCheck{Name: "sidecars", Check: down}, ReadinessCheck{Name: "redis", Check: ok})

		rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		body := testutil.UnmarshalResponse[readyResponse](t, rr)
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "unavailable", body.Checks["sidecars"])
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})

	t.Run("no checks", func(t *testing.T) {
		f := newFixture(t)
		rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/ready", nil))
		testutil.AssertStatusOK(t, rr)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/health", nil))

	rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	testutil.AssertStatusOK(t, rr)
	assert.Contains(t, rr.Body.String(), "kyc_http_requests_total")
}

func TestRouteClasses(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().ValidatePhone(gomock.Any(), "0712345678", "").
		Return(nil, models.PhoneValidationOutcome{IsValid: true, Message: "Valid phone number"})
	rr := testutil.DoRequest(f.router,
		testutil.NewJSONRequest(t, http.MethodPost, "/validate-phone", map[string]string{"phone_number": "0712345678"}))
	testutil.AssertStatusOK(t, rr)
	assert.Equal(t, "lookup", rr.Header().Get("X-Test-Class"))

	rr = testutil.DoRequest(f.router,
		testutil.NewMultipartRequest(t, http.MethodPost, "/api/validate/kenyan-id", map[string]string{"name": "John Doe"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "verification", rr.Header().Get("X-Test-Class"))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.RequestsTotal.WithLabelValues("/api/validate/kenyan-id", "POST", "400")))
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	rr := testutil.DoRequest(f.router, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 1.0, promtest.ToFloat64(f.metrics.RequestsTotal.WithLabelValues("unmatched", "GET", "404")))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/validate-kyc", nil)
	req.Header.Set("Origin", "https://kyc.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := testutil.DoRequest(f.router, req)

	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
