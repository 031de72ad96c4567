package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"kycverify/internal/platform/metrics"
	rlmodels "kycverify/internal/ratelimit/models"
	"kycverify/internal/verification/handler"
	"kycverify/pkg/platform/httputil"
	"kycverify/pkg/platform/middleware/metadata"
	"kycverify/pkg/platform/middleware/observability"
	"kycverify/pkg/platform/middleware/requesttime"
	"kycverify/pkg/requestcontext"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "kenyan-id-validation"

const readyTimeout = 3 * time.Second

// RateLimiter builds the per-class limiting middleware.
type RateLimiter interface {
	RateLimit(class rlmodels.EndpointClass) func(http.Handler) http.Handler
}

// ReadinessCheck is one dependency probed by GET /ready.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Dependencies is everything the router mounts.
type Dependencies struct {
	Verification   *handler.Handler
	RateLimiter    RateLimiter
	Readiness      []ReadinessCheck
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	AllowedOrigins []string

	// TrustProxyHeaders honours X-Forwarded-For when resolving client IPs.
	TrustProxyHeaders bool
}

// NewRouter wires the public endpoints and the shared middleware stack.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(observability.Recover(deps.Logger))
	r.Use(observability.Tracing)
	r.Use(metadata.ClientMetadata(deps.TrustProxyHeaders))
	r.Use(requesttime.Middleware)
	r.Use(observability.AccessLog(deps.Logger))
	r.Use(instrument(deps.Metrics))
	r.Use(middleware.Compress(5))

	r.Get("/health", handleHealth)
	r.Get("/ready", handleReady(deps.Readiness, deps.Logger))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.RateLimit(rlmodels.ClassVerification))
		deps.Verification.RegisterVerification(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.RateLimit(rlmodels.ClassLookup))
		deps.Verification.RegisterLookups(r)
	})

	return newCORS(deps.AllowedOrigins).Handler(r)
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", observability.RequestIDHeader},
		ExposedHeaders: []string{
			observability.RequestIDHeader,
			observability.TraceIDHeader,
			"Retry-After",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
			"X-RateLimit-Status",
		},
		MaxAge: 300,
	})
}

// instrument records request counts and latency by chi route pattern, so
// paths never become unbounded label values.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(route, r.Method, status, time.Since(start))
		})
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "healthy", Service: ServiceName})
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// handleReady probes every dependency concurrently. Failure details go to the
// log, not the response.
func handleReady(checks []ReadinessCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		results := make([]error, len(checks))
		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				results[i] = c.Check(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := readyResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for i, c := range checks {
			if err := results[i]; err != nil {
				logger.WarnContext(ctx, "readiness check failed",
					"request_id", requestcontext.RequestID(ctx),
					"check", c.Name,
					"error", err,
				)
				resp.Checks[c.Name] = "unavailable"
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
