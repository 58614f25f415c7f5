package main

import (
	"github.com/intinc/platformexplorer/ui"
	"github.com/justinas/alice"
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.FileServerFS(ui.Files))

	// The JSON API is stateless and needs neither sessions nor CSRF protection.
	api := alice.New(app.apiRateLimit())
	mux.Handle("GET /api/healthy", api.ThenFunc(app.healthy))
	mux.Handle("GET /api/platforms", api.ThenFunc(app.listPlatforms))
	mux.Handle("GET /api/platforms/{id}", api.ThenFunc(app.getPlatform))
	mux.Handle("POST /api/platforms/compare", api.ThenFunc(app.comparePlatforms))
	mux.Handle("GET /api/strategy", api.ThenFunc(app.listStrategyTiers))
	mux.Handle("POST /api/roi/calculate", api.Append(app.roiRateLimit()).ThenFunc(app.calculateROI))
	mux.Handle("POST /api/prd/generate", api.ThenFunc(app.generatePRD))
	mux.Handle("POST /api/assessment/calculate", api.ThenFunc(app.calculateAssessment))
	mux.Handle("GET /api/profiles", api.ThenFunc(app.listProfiles))

	session := alice.New(app.sessionManager.LoadAndSave, app.noSurf, commonContext, app.webAuthnHandler.AuthenticateMiddleware)
	authAPI := api.Extend(session)
	mux.Handle("GET /api/auth/status", authAPI.ThenFunc(app.authStatus))
	mux.Handle("POST /api/registration/start", authAPI.ThenFunc(app.beginRegistration))
	mux.Handle("POST /api/registration/finish", authAPI.ThenFunc(app.finishRegistration))
	mux.Handle("POST /api/login/start", authAPI.ThenFunc(app.beginLogin))
	mux.Handle("POST /api/login/finish", authAPI.ThenFunc(app.finishLogin))
	mux.Handle("POST /api/logout", authAPI.ThenFunc(app.logout))
	mux.Handle("/api/", api.ThenFunc(app.apiNotFound))

	for _, s := range app.sections {
		mux.Handle("GET "+s.pattern(), session.Then(app.section(s)))
	}
	mux.Handle("POST /selection", session.ThenFunc(app.toggleSelection))
	mux.Handle("POST /selection/clear", session.ThenFunc(app.clearSelection))
	mux.Handle("POST /assessment", session.ThenFunc(app.updateAssessment))
	mux.Handle("POST /checklist", session.ThenFunc(app.toggleChecklistItem))
	mux.Handle("POST /prd", session.ThenFunc(app.generatePRDPage))
	mux.Handle("POST /prd/download", session.ThenFunc(app.downloadPRD))
	mux.Handle("/", session.ThenFunc(app.notFound))

	common := alice.New(app.requestID, app.recoverPanic, app.logRequest, secureHeaders)
	return common.Then(timeoutHandler(mux, defaultTimeout))
}
