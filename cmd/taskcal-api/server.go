// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"taskcal/internal/handlers"
	"taskcal/internal/logging"
	"taskcal/internal/middleware"
)

// setupHTTPServer configures and starts the health check HTTP server. The
// service's functional surface is NATS; HTTP exposes only liveness and
// readiness probes.
func setupHTTPServer(
	flags flags,
	natsConn *nats.Conn,
	itemHandler *handlers.ItemHandler,
	labelHandler *handlers.LabelHandler,
	gracefulCloseWG *sync.WaitGroup,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !natsConn.IsConnected() {
			slog.ErrorContext(r.Context(), "readiness check failed: NATS not connected")
			http.Error(w, "NATS not connected", http.StatusServiceUnavailable)
			return
		}
		if !itemHandler.HandlerReady() || !labelHandler.HandlerReady() {
			slog.ErrorContext(r.Context(), "readiness check failed: handlers not ready")
			http.Error(w, "handlers not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	handler = middleware.RequestLoggerMiddleware()(handler)

	// Set up http listener in a goroutine using provided command line parameters.
	var addr string
	if flags.Bind == "*" {
		addr = ":" + flags.Port
	} else {
		addr = flags.Bind + ":" + flags.Port
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	gracefulCloseWG.Add(1)
	go func() {
		slog.With("addr", addr).Debug("starting http server, listening on port " + flags.Port)
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			slog.With(logging.ErrKey, err).Error("http listener error")
			os.Exit(1)
		}
		// Because ErrServerClosed is *immediately* returned when Shutdown is
		// called, not when when Shutdown completes, this must not yet decrement
		// the wait group.
	}()

	return httpServer
}
