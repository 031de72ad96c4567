package bucket

import (
	"context"
	"sort"
	"sync"
	"time"

	"kycverify/internal/ratelimit/models"
)

// pruneEvery is how many AllowN calls pass between sweeps of idle buckets.
const pruneEvery = 1024

// InMemoryBucketStore is a sliding-window log kept in process memory.
// Counters are per replica; RedisBucketStore shares them across instances.
type InMemoryBucketStore struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	calls   int
	now     func() time.Time
}

func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

func (s *InMemoryBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN admits cost requests at once if they all fit in the window.
// A denied call records nothing.
func (s *InMemoryBucketStore) AllowN(_ context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.calls++; s.calls%pruneEvery == 0 {
		s.prune(now, window)
	}

	hits := live(s.buckets[key], now, window)
	res := &models.RateLimitResult{Limit: limit}
	if len(hits)+cost > limit {
		s.buckets[key] = hits
		res.ResetAt = oldest(hits, now).Add(window)
		res.RetryAfter = models.RetryAfterSeconds(now, res.ResetAt)
		return res, nil
	}

	for range cost {
		hits = append(hits, now)
	}
	s.buckets[key] = hits
	res.Allowed = true
	res.Remaining = limit - len(hits)
	res.ResetAt = hits[0].Add(window)
	return res, nil
}

func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets, key)
	return nil
}

func (s *InMemoryBucketStore) GetCurrentCount(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(live(s.buckets[key], s.now(), window)), nil
}

// Len reports how many keys are tracked.
func (s *InMemoryBucketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// prune drops keys with no hit inside window. Caller holds s.mu.
func (s *InMemoryBucketStore) prune(now time.Time, window time.Duration) {
	for key, hits := range s.buckets {
		if len(live(hits, now, window)) == 0 {
			delete(s.buckets, key)
		}
	}
}

// live returns the suffix of hits strictly newer than now-window. hits is
// kept in arrival order so a binary search finds the cut.
func live(hits []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	i := sort.Search(len(hits), func(i int) bool { return hits[i].After(cutoff) })
	return hits[i:]
}

func oldest(hits []time.Time, now time.Time) time.Time {
	if len(hits) == 0 {
		return now
	}
	return hits[0]
}
