package main

import "net/http"

type healthResponse struct {
	Status    string `json:"status"`
	Platforms int    `json:"platforms"`
}

// healthy reports readiness once the catalog is loaded. It is the probe of the smoke test and the test server.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		Platforms: len(app.catalog.Platforms()),
	}, "Service unavailable")
}
