// Package contexthelpers stores request-scoped values set by middleware.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	isAuthenticatedContextKey = contextKey("isAuthenticated")
	csrfTokenContextKey       = contextKey("csrfToken")
	requestIDContextKey       = contextKey("requestID")
)

func with(r *http.Request, key contextKey, v any) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, v))
}

// value returns the value stored under key or the zero value of T.
func value[T any](ctx context.Context, key contextKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// AuthenticateContext marks the request as coming from a signed in passkey user.
func AuthenticateContext(r *http.Request) *http.Request {
	return with(r, isAuthenticatedContextKey, true)
}

func IsAuthenticated(ctx context.Context) bool {
	return value[bool](ctx, isAuthenticatedContextKey)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	return with(r, csrfTokenContextKey, csrfToken)
}

func CSRFToken(ctx context.Context) string {
	return value[string](ctx, csrfTokenContextKey)
}

func SetRequestID(r *http.Request, requestID string) *http.Request {
	return with(r, requestIDContextKey, requestID)
}

// RequestID returns the id assigned to the request by the request id middleware.
func RequestID(ctx context.Context) string {
	return value[string](ctx, requestIDContextKey)
}
