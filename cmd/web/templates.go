package main

import (
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"github.com/intinc/platformexplorer/ui"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"slices"
)

type tabLink struct {
	Path   string
	Name   string
	Label  string
	Active bool
}

// baseTemplateData is shared by every full page.
type baseTemplateData struct {
	Title          string
	Authenticated  bool
	SelectionCount int
	MaxSelection   int
	Tabs           []tabLink
	Flash          string
	Region         template.HTML
}

type regionData struct {
	Name string
	Body template.HTML
}

type fallbackData struct {
	RetryURL  string
	ReloadURL string
}

// scoreCell is one capability score of a table. Band drives the colour scale.
type scoreCell struct {
	Score int
	Band  string
	Best  bool
}

// scoreBand buckets a 1-10 score into the legend bands.
func scoreBand(score int) string {
	switch {
	case score >= 9:
		return "excellent"
	case score >= 7:
		return "strong"
	case score >= 5:
		return "moderate"
	case score >= 3:
		return "weak"
	default:
		return "limited"
	}
}

type toggleOption struct {
	Value    string
	Selected bool
}

type toggleGroup struct {
	Action  string
	Options []toggleOption
}

func toggleSet(action string, options []string, selected []string) toggleGroup {
	g := toggleGroup{Action: action, Options: make([]toggleOption, len(options))}
	for i, o := range options {
		g.Options[i] = toggleOption{Value: o, Selected: slices.Contains(selected, o)}
	}
	return g
}

func (app *application) newBaseTemplateData(r *http.Request, s section) baseTemplateData {
	ctx := r.Context()
	tabs := make([]tabLink, len(app.sections))
	for i, t := range app.sections {
		tabs[i] = tabLink{Path: t.path, Name: t.name, Label: t.label, Active: t.name == s.name}
	}
	selection := app.selection(ctx)
	return baseTemplateData{
		Title:          s.title,
		Authenticated:  contexthelpers.IsAuthenticated(ctx),
		SelectionCount: selection.Len(),
		MaxSelection:   sessionstate.MaxSelection,
		Tabs:           tabs,
		Flash:          app.sessionManager.PopString(ctx, string(flashSessionKey)),
	}
}

// templateFuncs are bound at parse time. csrf is rebound for every request in renderSection.
func (app *application) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"csrf": func() template.HTML {
			panic("csrf is bound per request")
		},
		"money": func(v float64) string {
			rounded := int64(math.Round(v))
			if rounded < 0 {
				return app.printer.Sprintf("-$%d", -rounded)
			}
			return app.printer.Sprintf("$%d", rounded)
		},
		"number": func(v float64) string {
			return app.printer.Sprintf("%d", int64(math.Round(v)))
		},
		"toggleSet": toggleSet,
	}
}

// parseTemplates parses one template set per section from the embedded files. Each set holds the layout, the
// region wrappers and the section's "page" template.
func (app *application) parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(app.sections))
	for _, s := range app.sections {
		t, err := template.New(s.name).Funcs(app.templateFuncs()).ParseFS(ui.Files,
			"templates/base.gohtml",
			"templates/region.gohtml",
			"templates/pages/"+s.name+".gohtml",
		)
		if err != nil {
			return nil, errors.Wrap(err, "parse page template", slog.String("page", s.name))
		}
		templates[s.name] = t
	}
	return templates, nil
}
