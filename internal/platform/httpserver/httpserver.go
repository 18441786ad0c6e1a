// Package httpserver builds the process HTTP server with timeouts sized for
// a small-payload JSON API.
package httpserver

import (
	"context"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 90 * time.Second

	// ShutdownGrace bounds how long in-flight requests get to finish once
	// shutdown starts.
	ShutdownGrace = 10 * time.Second
)

// New builds the HTTP server. Every request body here is a small JSON
// document, so the read and write timeouts are tight; idle keep-alive
// connections get longer.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Shutdown drains in-flight requests, giving up after ShutdownGrace.
func Shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	return srv.Shutdown(ctx)
}
