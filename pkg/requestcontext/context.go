// Package requestcontext carries per-request values set by middleware so that
// services and adapters can read them without importing net/http.
package requestcontext

import (
	"context"
	"time"
)

type ctxKey int

const (
	clientKey ctxKey = iota
	requestIDKey
	receivedAtKey
)

type client struct {
	ip        string
	userAgent string
}

// WithClientMetadata records the caller's IP and User-Agent.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey, client{ip: ip, userAgent: userAgent})
}

// ClientIP is the resolved caller address, or "" outside a request.
func ClientIP(ctx context.Context) string {
	c, _ := ctx.Value(clientKey).(client)
	return c.ip
}

// UserAgent is the caller's User-Agent header, or "".
func UserAgent(ctx context.Context) string {
	c, _ := ctx.Value(clientKey).(client)
	return c.userAgent
}

// WithRequestID records the correlation ID echoed in X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation ID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithTime pins the time the request was received.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, receivedAtKey, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(receivedAtKey).(time.Time); ok {
		return t
	}
	return time.Now()
}
