package main

import (
	"bytes"
	"fmt"
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/errors"
	"html/template"
	"log/slog"
	"net/http"
)

// section is one tab of the UI. Each section renders inside its own boundary: a failure while building or
// rendering it is replaced by a fallback while the page layout and the other tabs keep working.
type section struct {
	name  string
	path  string
	label string
	title string
	// build returns the data of the section's "page" template.
	build func(r *http.Request) (any, error)
}

func (s section) pattern() string {
	if s.path == "/" {
		return "/{$}"
	}
	return s.path
}

func (app *application) newSections() []section {
	return []section{
		{name: "explorer", path: "/", label: "Explorer", title: "Platform Explorer", build: app.explorerData},
		{name: "comparison", path: "/comparison", label: "Comparison", title: "Comparison", build: app.comparisonData},
		{name: "matrix", path: "/matrix", label: "Matrix", title: "Capability Matrix", build: app.matrixData},
		{name: "roi", path: "/roi", label: "ROI", title: "ROI Calculator", build: app.roiData},
		{name: "strategy", path: "/strategy", label: "Strategy", title: "Adoption Strategy", build: app.strategyData},
		{name: "assessment", path: "/assessment", label: "Assess", title: "Platform Assessment", build: app.assessmentData},
		{name: "profile", path: "/profile", label: "Profile", title: "Assistant Profiles", build: app.profileData},
		{name: "prd", path: "/prd", label: "PRD", title: "PRD Generator", build: app.prdData},
	}
}

func (app *application) sectionByName(name string) section {
	for _, s := range app.sections {
		if s.name == name {
			return s
		}
	}
	panic("unknown section " + name)
}

func (app *application) section(s section) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.render(w, r, http.StatusOK, s, s.build)
	})
}

// render writes section s. htmx requests receive only the section region, other requests the full page.
func (app *application) render(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	s section,
	build func(r *http.Request) (any, error),
) {
	t, err := app.sectionTemplate(r, s)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	body, err := app.renderBoundary(r, t, s, build)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, "region", regionData{Name: s.name, Body: body}); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute region template", slog.String("section", s.name)))
		return
	}

	if !app.htmx.NewHandler(w, r).IsHxRequest() {
		data := app.newBaseTemplateData(r, s)
		data.Region = template.HTML(buf.String()) //nolint:gosec // rendered by html/template above.
		buf.Reset()
		if err = t.ExecuteTemplate(buf, "base", data); err != nil {
			app.serverError(w, r, errors.Wrap(err, "execute base template", slog.String("section", s.name)))
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// sectionTemplate clones the parsed template set of s and binds the request's CSRF field.
func (app *application) sectionTemplate(r *http.Request, s section) (*template.Template, error) {
	parsed, ok := app.templates[s.name]
	if !ok {
		return nil, errors.New("no template for section", slog.String("section", s.name))
	}
	t, err := parsed.Clone()
	if err != nil {
		return nil, errors.Wrap(err, "clone template", slog.String("section", s.name))
	}
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>",
		template.HTMLEscapeString(contexthelpers.CSRFToken(r.Context())))
	t.Funcs(template.FuncMap{
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is generated by nosurf.
		},
	})
	return t, nil
}

// renderBoundary renders the "page" template of s. Errors and panics are logged and replaced by the fallback.
func (app *application) renderBoundary(
	r *http.Request,
	t *template.Template,
	s section,
	build func(r *http.Request) (any, error),
) (template.HTML, error) {
	body, err := renderPage(r, t, build)
	if err == nil {
		return body, nil
	}

	app.logger.LogAttrs(r.Context(), slog.LevelError, "section failed",
		slog.String("section", s.name), slog.String("uri", r.URL.RequestURI()), errors.SlogError(err))
	buf := new(bytes.Buffer)
	fallback := fallbackData{RetryURL: r.URL.RequestURI(), ReloadURL: s.path}
	if r.Method != http.MethodGet {
		fallback.RetryURL = s.path
	}
	if err = t.ExecuteTemplate(buf, "fallback", fallback); err != nil {
		return "", errors.Wrap(err, "execute fallback template", slog.String("section", s.name))
	}
	return template.HTML(buf.String()), nil //nolint:gosec // rendered by html/template above.
}

func renderPage(r *http.Request, t *template.Template, build func(r *http.Request) (any, error)) (
	body template.HTML,
	err error,
) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New("section panic", slog.String("panic", fmt.Sprint(rec)))
		}
	}()

	data, err := build(r)
	if err != nil {
		return "", errors.Wrap(err, "build section data")
	}
	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, "page", data); err != nil {
		return "", errors.Wrap(err, "execute page template")
	}
	return template.HTML(buf.String()), nil //nolint:gosec // rendered by html/template above.
}

// renderWith renders s with fixed data. POST handlers use it to show validation errors in place.
func (app *application) renderWith(w http.ResponseWriter, r *http.Request, status int, s section, data any) {
	app.render(w, r, status, s, func(*http.Request) (any, error) {
		return data, nil
	})
}
