// Package requesttime pins the moment a request arrived on its context.
package requesttime

import (
	"net/http"
	"time"

	"kycverify/pkg/requestcontext"
)

// Middleware stamps the request with its arrival time. Latency logged by
// handlers is measured from this point, so it includes upload time.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(requestcontext.WithTime(r.Context(), time.Now())))
	})
}
