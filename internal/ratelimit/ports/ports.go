// Package ports is the seam between the rate limit service and its counter
// backends (Redis, in-process).
package ports

import (
	"context"
	"time"

	"kycverify/internal/ratelimit/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks BucketStore

// BucketStore keeps one sliding-window request log per key. Implementations
// must make the check and the increment a single atomic step.
type BucketStore interface {
	// Allow records one hit for key if fewer than limit hits fall inside window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
	// AllowN records cost hits at once, or none.
	AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error)
	Reset(ctx context.Context, key string) error
	// GetCurrentCount is the number of hits still inside window.
	GetCurrentCount(ctx context.Context, key string, window time.Duration) (int, error)
}
