package main

import (
	"fmt"
	"github.com/go-chi/httprate"
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/logging"
	"github.com/justinas/nosurf"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"log/slog"
	"net/http"
	"time"
)

const (
	requestIDLength = 10
	requestIDHeader = "X-Request-Id"

	apiRequestLimit = 100
	apiWindow       = 15 * time.Minute
	roiRequestLimit = 20
	roiWindow       = time.Minute
)

// contentSecurityPolicy allows scripts only from this origin and the htmx CDN. Inline scripts and styles are not
// allowed.
const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' https://unpkg.com; " +
	"style-src 'self'; " +
	"img-src 'self' data:; " +
	"connect-src 'self'; " +
	"object-src 'none'; " +
	"base-uri 'none'; " +
	"form-action 'self'; " +
	"frame-ancestors 'none'"

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

// requestID tags the request with a short random id. The id is returned in a response header and added to every
// log line of the request.
func (app *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := gonanoid.New(requestIDLength)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		w.Header().Set(requestIDHeader, id)
		r = contexthelpers.SetRequestID(r, id)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("request_id", id)))

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "received request",
			slog.String("proto", proto), slog.String("method", method), slog.String("uri", uri))

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// apiRateLimit limits every client IP to a fixed number of API requests per sliding window.
func (app *application) apiRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(apiRequestLimit, apiWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(app.tooManyRequests),
	)
}

// roiRateLimit is the stricter limit of the ROI calculator, applied on top of apiRateLimit.
func (app *application) roiRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(roiRequestLimit, roiWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(app.tooManyRequests),
	)
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func (app *application) noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   app.sessionManager.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	csrfHandler.SetFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "CSRF check failed", slog.Any("reason", nosurf.Reason(r)))
		app.clientError(w, r, http.StatusBadRequest)
	}))

	return csrfHandler
}
