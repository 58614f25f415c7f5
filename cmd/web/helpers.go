package main

import (
	"bytes"
	"encoding/json"
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/validation"
	"log/slog"
	"net/http"
	"strings"
)

const maxBodyBytes = 1 << 20

// errorResponse is the body of every failed API request. Server errors carry the request id for support.
type errorResponse struct {
	Message   string                 `json:"message"`
	Errors    []validation.Violation `json:"errors,omitempty"`
	RequestID string                 `json:"requestId,omitempty"`
}

func isAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.apiServerError(w, r, err, "Internal server error")
}

// apiServerError logs err and responds with a generic 500. API requests receive failure as JSON message.
func (app *application) apiServerError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	if isAPIRequest(r) {
		app.writeJSONError(w, http.StatusInternalServerError, errorResponse{
			Message:   failure,
			RequestID: contexthelpers.RequestID(r.Context()),
		})
		return
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, http.StatusText(status),
		slog.String("method", method), slog.String("uri", uri))
	if isAPIRequest(r) {
		app.writeJSONError(w, status, errorResponse{Message: http.StatusText(status)})
		return
	}
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	app.clientError(w, r, http.StatusNotFound)
}

func (app *application) apiNotFound(w http.ResponseWriter, _ *http.Request) {
	app.writeJSONError(w, http.StatusNotFound, errorResponse{Message: "Not found"})
}

func (app *application) tooManyRequests(w http.ResponseWriter, r *http.Request) {
	app.logger.LogAttrs(r.Context(), slog.LevelWarn, "rate limit exceeded", slog.String("uri", r.URL.RequestURI()))
	app.writeJSONError(w, http.StatusTooManyRequests, errorResponse{Message: "Too many requests, please try again later."})
}

// writeJSON encodes v before writing the status so that an encoding failure can still be reported with failure.
func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any, failure string) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "encode JSON response"), failure)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (app *application) writeJSONError(w http.ResponseWriter, status int, body errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON decodes the request body into dst. It responds with 400 or 413 and returns false when the body is
// not a single JSON value of at most maxBodyBytes.
func (app *application) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil && dec.More() {
		err = errors.New("trailing data after JSON value")
	}
	if err == nil {
		return true
	}

	app.logger.LogAttrs(r.Context(), slog.LevelDebug, "invalid JSON body", errors.SlogError(err))
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		app.writeJSONError(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "Request body too large"})
		return false
	}
	app.writeJSONError(w, http.StatusBadRequest, errorResponse{Message: "Invalid JSON body"})
	return false
}

// validate runs the validator over v. It responds with 400 and the violations and returns false when v is
// invalid.
func (app *application) validate(w http.ResponseWriter, r *http.Request, v any) bool {
	err := app.validator.Struct(v)
	if err == nil {
		return true
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		app.serverError(w, r, errors.Wrap(err, "validate request"))
		return false
	}
	app.writeJSONError(w, http.StatusBadRequest, errorResponse{Message: verr.Error(), Errors: verr.Violations})
	return false
}

// violations extracts the violations of a validation error. Any other error is returned as is.
func violations(err error) ([]validation.Violation, error) {
	if err == nil {
		return nil, nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Violations, nil
	}
	return nil, err
}

// localPath returns p when it is a path on this site and fallback otherwise.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}
