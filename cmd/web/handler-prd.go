package main

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/prd"
	"github.com/intinc/platformexplorer/internal/validation"
	"mime"
	"net/http"
)

type prdPageData struct {
	FeatureIdea string
	MinLength   int
	Errors      []validation.Violation
	Document    *models.PRDDocument
}

func (app *application) prdData(_ *http.Request) (any, error) {
	return prdPageData{MinLength: prd.MinFeatureIdeaLength}, nil
}

// generateFromForm validates the posted feature idea and generates the document. It returns the violations when
// the idea is invalid.
func (app *application) generateFromForm(r *http.Request) (models.PRDDocument, []validation.Violation, error) {
	req := validation.PRD{FeatureIdea: r.PostForm.Get("featureIdea")}
	errs, err := violations(app.validator.Struct(req))
	if err != nil || len(errs) > 0 {
		return models.PRDDocument{}, errs, err
	}
	doc, err := app.prdGenerator.Generate(req.FeatureIdea)
	if errors.Is(err, prd.ErrFeatureIdeaTooShort) {
		return doc, []validation.Violation{{Field: "featureIdea", Message: err.Error()}}, nil
	}
	return doc, nil, err
}

func (app *application) generatePRDPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	doc, errs, err := app.generateFromForm(r)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "generate PRD"))
		return
	}

	data := prdPageData{FeatureIdea: r.PostForm.Get("featureIdea"), MinLength: prd.MinFeatureIdeaLength, Errors: errs}
	status := http.StatusUnprocessableEntity
	if len(errs) == 0 {
		data.Document = &doc
		status = http.StatusOK
	}
	app.renderWith(w, r, status, app.sectionByName("prd"), data)
}

// downloadPRD responds with the generated document as a markdown attachment.
func (app *application) downloadPRD(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	doc, errs, err := app.generateFromForm(r)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "generate PRD"))
		return
	}
	if len(errs) > 0 {
		app.renderWith(w, r, http.StatusUnprocessableEntity, app.sectionByName("prd"), prdPageData{
			FeatureIdea: r.PostForm.Get("featureIdea"),
			MinLength:   prd.MinFeatureIdeaLength,
			Errors:      errs,
		})
		return
	}
	app.writeMarkdown(w, doc)
}

func (app *application) writeMarkdown(w http.ResponseWriter, doc models.PRDDocument) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": prd.Filename(doc),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(prd.Markdown(doc)))
}
