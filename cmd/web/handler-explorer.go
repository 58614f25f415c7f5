package main

import (
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"log/slog"
	"net/http"
)

type platformCard struct {
	Platform models.Platform
	Average  int
	Selected bool
}

type explorerPageData struct {
	Filter        catalog.Filter
	Categories    []models.Category
	Priorities    []models.Priority
	Cards         []platformCard
	Total         int
	SelectionFull bool
	ReturnTo      string
}

func (app *application) explorerData(r *http.Request) (any, error) {
	query := r.URL.Query()
	filter := catalog.Filter{
		Query:    query.Get("q"),
		Category: query.Get("category"),
		Priority: query.Get("priority"),
	}
	selection := app.selection(r.Context())

	platforms := app.catalog.Platforms()
	matches := filter.Apply(platforms)
	cards := make([]platformCard, len(matches))
	for i, p := range matches {
		cards[i] = platformCard{
			Platform: p,
			Average:  scoring.AverageScore(p.Capabilities),
			Selected: selection.Contains(p.ID),
		}
	}

	return explorerPageData{
		Filter:        filter,
		Categories:    app.catalog.Categories(),
		Priorities:    app.catalog.Priorities(),
		Cards:         cards,
		Total:         len(platforms),
		SelectionFull: selection.Full(),
		ReturnTo:      r.URL.RequestURI(),
	}, nil
}

// toggleSelection adds or removes a platform from the comparison and returns to the page the form was posted from.
func (app *application) toggleSelection(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	id := r.PostForm.Get("id")
	if _, err := app.catalog.Platform(id); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	selection := app.selection(ctx)
	selected, err := selection.Toggle(id)
	switch {
	case errors.Is(err, sessionstate.ErrSelectionFull):
		app.flash(ctx, sessionstate.ErrSelectionFull.Error())
	case err != nil:
		app.serverError(w, r, errors.Wrap(err, "toggle selection"))
		return
	default:
		app.putSelection(ctx, selection)
		app.logger.LogAttrs(ctx, slog.LevelDebug, "toggled selection",
			slog.String("platform_id", id), slog.Bool("selected", selected))
	}

	http.Redirect(w, r, localPath(r.PostForm.Get("return"), "/"), http.StatusSeeOther)
}
