package models

import (
	"fmt"
	"strings"
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassVerification: full verification (30 req/min) - /api/validate/kenyan-id, /api/validate-kyc
	ClassVerification EndpointClass = "verification"
	// ClassLookup: single-signal lookups (100 req/min) - /validate-phone, /extract-text, /validate-face
	ClassLookup EndpointClass = "lookup"
)

// IsValid checks if the endpoint class is one of the supported enum values.
func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassVerification, ClassLookup:
		return true
	}
	return false
}

// Limit is a request budget over a sliding window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// PerMinute builds a one-minute limit.
func PerMinute(n int) Limit {
	return Limit{RequestsPerWindow: n, Window: time.Minute}
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, with a
// floor of one.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	if secs < 1 {
		secs = 1
	}
	return secs
}

// NewIPRateLimitKey builds the bucket key for a client IP and endpoint class.
// IPv6 colons are replaced so the key keeps exactly three segments.
func NewIPRateLimitKey(ip string, class EndpointClass) string {
	return fmt.Sprintf("ip:%s:%s", strings.ReplaceAll(ip, ":", "_"), class)
}
