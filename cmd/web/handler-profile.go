package main

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"log/slog"
	"net/http"
	"slices"
)

type checklistItem struct {
	Key   string
	Label string
	Done  bool
}

type checklistPhase struct {
	Phase int
	Title string
	Items []checklistItem
}

type profilePageData struct {
	Roles            []models.Role
	Role             string
	Profiles         []models.RoleProfile
	SecurityFeatures []string
	KeyCapabilities  []string
	Progress         int
	Phases           []checklistPhase
}

func (app *application) profileData(r *http.Request) (any, error) {
	roles := app.catalog.Roles()
	role := r.URL.Query().Get("role")
	if !slices.ContainsFunc(roles, func(ro models.Role) bool { return ro.ID == role }) {
		role = models.RoleAll
	}

	checklist := app.checklist(r.Context())
	phases := app.catalog.DeploymentPhases()
	data := profilePageData{
		Roles:            roles,
		Role:             role,
		Profiles:         app.catalog.RoleProfiles(role),
		SecurityFeatures: app.catalog.SecurityFeatures(),
		KeyCapabilities:  app.catalog.KeyCapabilities(),
		Phases:           make([]checklistPhase, len(phases)),
	}
	var total int
	for i, p := range phases {
		items := make([]checklistItem, len(p.Items))
		for j, item := range p.Items {
			key := sessionstate.ChecklistKey(p.Phase, item)
			items[j] = checklistItem{Key: key, Label: item, Done: checklist.Done(key)}
		}
		total += len(items)
		data.Phases[i] = checklistPhase{Phase: p.Phase, Title: p.Title, Items: items}
	}
	data.Progress = checklist.Progress(total)
	return data, nil
}

// checklistKeys lists the key of every deployment checklist item.
func (app *application) checklistKeys() []string {
	var keys []string
	for _, p := range app.catalog.DeploymentPhases() {
		for _, item := range p.Items {
			keys = append(keys, sessionstate.ChecklistKey(p.Phase, item))
		}
	}
	return keys
}

func (app *application) toggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	key := r.PostForm.Get("key")
	if !slices.Contains(app.checklistKeys(), key) {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	checklist := app.checklist(ctx)
	done := checklist.Toggle(key)
	app.putChecklist(ctx, checklist)
	app.logger.LogAttrs(ctx, slog.LevelDebug, "toggled checklist item", slog.String("key", key), slog.Bool("done", done))

	http.Redirect(w, r, "/profile#deployment", http.StatusSeeOther)
}
