package main

import (
	"context"
	"github.com/intinc/platformexplorer/internal/sessionstate"
)

type sessionKey string

const (
	selectionSessionKey = sessionKey("selection")
	wizardSessionKey    = sessionKey("wizard")
	checklistSessionKey = sessionKey("checklist")
	flashSessionKey     = sessionKey("flash")
)

func (app *application) selection(ctx context.Context) sessionstate.Selection {
	s, _ := app.sessionManager.Get(ctx, string(selectionSessionKey)).(sessionstate.Selection)
	return s
}

func (app *application) putSelection(ctx context.Context, s sessionstate.Selection) {
	app.sessionManager.Put(ctx, string(selectionSessionKey), s)
}

// wizard returns the assessment in progress or a fresh one dated today.
func (app *application) wizard(ctx context.Context) sessionstate.Wizard {
	w, ok := app.sessionManager.Get(ctx, string(wizardSessionKey)).(sessionstate.Wizard)
	if !ok {
		return sessionstate.NewWizard(app.now())
	}
	return w
}

func (app *application) putWizard(ctx context.Context, w sessionstate.Wizard) {
	app.sessionManager.Put(ctx, string(wizardSessionKey), w)
}

func (app *application) checklist(ctx context.Context) sessionstate.Checklist {
	c, _ := app.sessionManager.Get(ctx, string(checklistSessionKey)).(sessionstate.Checklist)
	return c
}

func (app *application) putChecklist(ctx context.Context, c sessionstate.Checklist) {
	app.sessionManager.Put(ctx, string(checklistSessionKey), c)
}

func (app *application) flash(ctx context.Context, msg string) {
	app.sessionManager.Put(ctx, string(flashSessionKey), msg)
}
