package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project. Write timeout
// leaves room for a full verification pass at the adapter timeout.
func New(addr string, handler http.Handler, adapterTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      adapterTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
