// Package sentinel holds infrastructure error values that adapters and stores
// wrap so callers can branch with errors.Is. Input validation errors belong
// in pkg/domain-errors instead.
package sentinel

import "errors"

var (
	// ErrUnavailable means a dependency (sidecar, Redis) could not be reached.
	ErrUnavailable = errors.New("unavailable")
	// ErrInvalidState means a dependency answered with something it never should.
	ErrInvalidState = errors.New("invalid state")
	// ErrNotConfigured means a lookup hit a setting nobody provided.
	ErrNotConfigured = errors.New("not configured")
)
