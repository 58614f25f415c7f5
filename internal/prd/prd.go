// Package prd renders product requirements documents from a fixed set of section templates.
package prd

import (
	"bytes"
	"embed"
	"github.com/google/uuid"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"log/slog"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

//go:embed sections/*.md.tmpl
var sectionFS embed.FS

const (
	// DocumentTitle is the title of every generated document.
	DocumentTitle = "Product Requirements Document"
	// MinFeatureIdeaLength is the minimum number of characters of a trimmed feature idea.
	MinFeatureIdeaLength = 10
)

var ErrFeatureIdeaTooShort = errors.NewSentinel("Feature idea must be at least 10 characters")

type section struct {
	title    string
	template string
}

var sections = []section{
	{title: "1. Executive Summary", template: "01-executive-summary.md.tmpl"},
	{title: "2. Problem Statement", template: "02-problem-statement.md.tmpl"},
	{title: "3. Target Audience / User Personas", template: "03-target-audience.md.tmpl"},
	{title: "4. Functional Requirements", template: "04-functional-requirements.md.tmpl"},
	{title: "5. Non-Functional Requirements", template: "05-non-functional-requirements.md.tmpl"},
	{title: "6. User Stories & Acceptance Criteria", template: "06-user-stories.md.tmpl"},
	{title: "7. Technical Architecture Overview", template: "07-technical-architecture.md.tmpl"},
	{title: "8. API Design", template: "08-api-design.md.tmpl"},
	{title: "9. UI/UX Considerations", template: "09-ux-considerations.md.tmpl"},
	{title: "10. Security & Compliance", template: "10-security-compliance.md.tmpl"},
	{title: "11. Testing Strategy", template: "11-testing-strategy.md.tmpl"},
	{title: "12. Deployment & DevOps Plan", template: "12-deployment-plan.md.tmpl"},
	{title: "13. Assumptions, Risks & Open Questions", template: "13-assumptions-risks.md.tmpl"},
}

// SectionTitles returns the titles of the generated sections in document order.
func SectionTitles() []string {
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.title
	}
	return titles
}

// Generator renders PRDDocuments. It is safe for concurrent use.
type Generator struct {
	templates *template.Template
	now       func() time.Time
	newID     func() string
}

type Option func(*Generator)

// WithClock replaces the time source of GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDSource replaces the document id source.
func WithIDSource(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// NewGenerator parses the embedded section templates.
func NewGenerator(opts ...Option) (*Generator, error) {
	t, err := template.New("prd").Option("missingkey=error").ParseFS(sectionFS, "sections/*.md.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "parse section templates")
	}
	for _, s := range sections {
		if t.Lookup(s.template) == nil {
			return nil, errors.New("section template missing", slog.String("template", s.template))
		}
	}
	g := &Generator{
		templates: t,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate renders the 13 sections for featureIdea. The idea is trimmed first and must then be at least
// MinFeatureIdeaLength characters long.
func (g *Generator) Generate(featureIdea string) (models.PRDDocument, error) {
	featureIdea = strings.TrimSpace(featureIdea)
	if utf8.RuneCountInString(featureIdea) < MinFeatureIdeaLength {
		return models.PRDDocument{}, ErrFeatureIdeaTooShort
	}

	data := struct{ FeatureIdea string }{FeatureIdea: featureIdea}
	doc := models.PRDDocument{
		ID:          g.newID(),
		Title:       DocumentTitle,
		GeneratedAt: g.now().UTC(),
		FeatureIdea: featureIdea,
		Sections:    make([]models.PRDSection, 0, len(sections)),
	}
	var buf bytes.Buffer
	for _, s := range sections {
		buf.Reset()
		if err := g.templates.ExecuteTemplate(&buf, s.template, data); err != nil {
			return models.PRDDocument{}, errors.Wrap(err, "render section", slog.String("template", s.template))
		}
		doc.Sections = append(doc.Sections, models.PRDSection{
			Title:   s.title,
			Content: strings.TrimSpace(buf.String()),
		})
	}
	return doc, nil
}
