package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycverify/internal/platform/config"
	"kycverify/internal/platform/httpserver"
	"kycverify/internal/platform/logger"
	httpmetrics "kycverify/internal/platform/metrics"
	"kycverify/internal/platform/redis"
	rlmetrics "kycverify/internal/ratelimit/metrics"
	rlmiddleware "kycverify/internal/ratelimit/middleware"
	rlmodels "kycverify/internal/ratelimit/models"
	rlports "kycverify/internal/ratelimit/ports"
	rlservice "kycverify/internal/ratelimit/service"
	"kycverify/internal/ratelimit/store/bucket"
	httptransport "kycverify/internal/transport/http"
	"kycverify/internal/verification/adapters/face"
	"kycverify/internal/verification/adapters/imaging"
	"kycverify/internal/verification/adapters/ocr"
	"kycverify/internal/verification/adapters/phonelib"
	"kycverify/internal/verification/handler"
	vmetrics "kycverify/internal/verification/metrics"
	"kycverify/internal/verification/service"
)

// main wires configuration, adapters and services, serves HTTP and shuts
// down cleanly on SIGINT or SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(ctx, cfg.Redis, log)
	if err != nil {
		log.Error("invalid redis configuration", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	verifier, err := buildVerificationService(cfg, log)
	if err != nil {
		log.Error("failed to initialize verification service", "error", err)
		os.Exit(1)
	}

	limiter, err := buildRateLimiter(cfg, redisClient, log)
	if err != nil {
		log.Error("failed to initialize rate limiter", "error", err)
		os.Exit(1)
	}

	readiness := []httptransport.ReadinessCheck{{Name: "sidecars", Check: verifier.Ready}}
	if redisClient != nil {
		readiness = append(readiness, httptransport.ReadinessCheck{Name: "redis", Check: redisClient.Health})
	}

	router := httptransport.NewRouter(httptransport.Dependencies{
		Verification:      handler.New(verifier, log, cfg.Server.MaxUploadBytes),
		RateLimiter:       limiter,
		Readiness:         readiness,
		Logger:            log,
		Metrics:           httpmetrics.New(),
		MetricsHandler:    promhttp.Handler(),
		AllowedOrigins:    cfg.Server.CORSAllowedOrigins,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	})

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Sidecars.AdapterTimeout)

	go func() {
		log.Info("starting kenyan-id-validation", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func buildVerificationService(cfg config.Config, log *slog.Logger) (*service.Service, error) {
	return service.New(
		ocr.New(cfg.Sidecars.OCRURL),
		face.New(cfg.Sidecars.FaceURL),
		phonelib.New(),
		imaging.New(),
		service.WithLogger(log),
		service.WithMetrics(vmetrics.New()),
		service.WithConfig(&service.Config{
			IDMinDigits:         cfg.Verification.IDMinDigits,
			IDMaxDigits:         cfg.Verification.IDMaxDigits,
			FaceMatchThreshold:  cfg.Verification.FaceMatchThreshold,
			FaceMaxDistance:     cfg.Verification.FaceMaxDistance,
			NameMinSharedTokens: cfg.Verification.NameMinSharedTokens,
			PhoneDefaultRegion:  cfg.Verification.PhoneDefaultRegion,
			AdapterTimeout:      cfg.Sidecars.AdapterTimeout,
		}),
	)
}

// buildRateLimiter uses Redis when configured, with an in-memory fallback
// behind a circuit breaker. Without Redis the in-memory store is primary.
func buildRateLimiter(cfg config.Config, redisClient *redis.Client, log *slog.Logger) (*rlmiddleware.Middleware, error) {
	var primary rlports.BucketStore = bucket.NewInMemoryBucketStore()
	opts := []rlservice.Option{
		rlservice.WithLogger(log),
		rlservice.WithMetrics(rlmetrics.New()),
		rlservice.WithConfig(&rlservice.Config{Limits: map[rlmodels.EndpointClass]rlmodels.Limit{
			rlmodels.ClassVerification: rlmodels.PerMinute(cfg.RateLimit.VerifyPerMinute),
			rlmodels.ClassLookup:       rlmodels.PerMinute(cfg.RateLimit.LookupPerMinute),
		}}),
	}
	if redisClient != nil {
		opts = append(opts, rlservice.WithFallback(primary))
		primary = bucket.NewRedis(redisClient.Client)
	}

	svc, err := rlservice.New(primary, opts...)
	if err != nil {
		return nil, err
	}
	return rlmiddleware.New(svc, log, rlmiddleware.WithDisabled(cfg.RateLimit.Disabled)), nil
}
