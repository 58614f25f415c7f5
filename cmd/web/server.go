package main

import (
	"context"
	"github.com/intinc/platformexplorer/internal/errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	// handlerTimeoutMargin leaves the timeout handler time to respond before the write deadline.
	handlerTimeoutMargin = 500 * time.Millisecond
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout - INT Platform Explorer</title></head>
<body>
<h1>The request timed out</h1>
<p>Calculations are normally instant. <a href="">Reload the page</a> to try again.</p>
</body>
</html>
`

// timeoutHandler responds with 503 Service Unavailable when h misses the deadline.
func timeoutHandler(h http.Handler, timeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, timeout-handlerTimeoutMargin, timeoutBody)
}

// serve serves the application on listener until ctx is done and then shuts down gracefully.
func (app *application) serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           app.routes(),
		IdleTimeout:       time.Minute,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
	}

	shutdownComplete := make(chan error, 1)
	go func() {
		<-ctx.Done()
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
		defer cancel()
		shutdownComplete <- errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown server")
	}()

	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.String("addr", listener.Addr().String()))
	if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server serve")
	}
	return <-shutdownComplete
}
