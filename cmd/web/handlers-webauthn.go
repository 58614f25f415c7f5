package main

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"net/http"
)

func (app *application) beginRegistration(w http.ResponseWriter, r *http.Request) {
	out, err := app.webAuthnHandler.BeginRegistration(r.Context())
	if err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "begin registration"), "Failed to start registration")
		return
	}
	writeRawJSON(w, out)
}

func (app *application) finishRegistration(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.FinishRegistration(r); err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "finish registration"), "Failed to finish registration")
	}
}

func (app *application) beginLogin(w http.ResponseWriter, r *http.Request) {
	out, err := app.webAuthnHandler.BeginLogin(r.Context())
	if err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "begin login"), "Failed to start login")
		return
	}
	writeRawJSON(w, out)
}

func (app *application) finishLogin(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.FinishLogin(r); err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "finish login"), "Failed to finish login")
	}
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.webAuthnHandler.Logout(r.Context()); err != nil {
		app.serverError(w, r, errors.Wrap(err, "logout"))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeRawJSON(w http.ResponseWriter, out []byte) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}
