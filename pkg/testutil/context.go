package testutil

import (
	"net/http"

	"kycverify/pkg/requestcontext"
)

// WithClientIP attaches client metadata the way the metadata middleware would.
func WithClientIP(req *http.Request, ip string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent()))
}
