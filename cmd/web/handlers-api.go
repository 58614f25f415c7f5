package main

import (
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/contexthelpers"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/prd"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/validation"
	"log/slog"
	"mime"
	"net/http"
	"strings"
)

func (app *application) listPlatforms(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.catalog.Platforms(), "Failed to fetch platforms")
}

func (app *application) getPlatform(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := app.catalog.Platform(id)
	if errors.Is(err, catalog.ErrPlatformNotFound) {
		app.writeJSONError(w, http.StatusNotFound, errorResponse{Message: "Platform not found"})
		return
	}
	if err != nil {
		app.apiServerError(w, r, err, "Failed to fetch platform")
		return
	}
	app.writeJSON(w, r, http.StatusOK, p, "Failed to fetch platform")
}

type missingPlatformsResponse struct {
	Message        string   `json:"message"`
	MissingIDs     []string `json:"missingIds"`
	ValidPlatforms []string `json:"validPlatforms"`
}

// comparePlatforms returns the requested platforms in catalog order. Partially unknown ids are reported with the
// ids that did match.
func (app *application) comparePlatforms(w http.ResponseWriter, r *http.Request) {
	var req validation.Compare
	if !app.decodeJSON(w, r, &req) || !app.validate(w, r, req) {
		return
	}

	found, missing := app.catalog.PlatformsByIDs(req.IDs)
	switch {
	case len(found) == 0:
		app.writeJSONError(w, http.StatusNotFound, errorResponse{Message: "No platforms found for the given IDs"})
	case len(missing) > 0:
		valid := make([]string, len(found))
		for i, p := range found {
			valid[i] = p.ID
		}
		app.writeJSON(w, r, http.StatusBadRequest, missingPlatformsResponse{
			Message:        "Platforms not found: " + strings.Join(missing, ", "),
			MissingIDs:     missing,
			ValidPlatforms: valid,
		}, "Failed to compare platforms")
	default:
		app.writeJSON(w, r, http.StatusOK, found, "Failed to compare platforms")
	}
}

func (app *application) listStrategyTiers(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, app.catalog.StrategyTiers(), "Failed to fetch strategy tiers")
}

func (app *application) calculateROI(w http.ResponseWriter, r *http.Request) {
	var req validation.ROIInputs
	if !app.decodeJSON(w, r, &req) || !app.validate(w, r, req) {
		return
	}
	app.writeJSON(w, r, http.StatusOK, scoring.CalculateROI(req.Model()), "Failed to calculate ROI")
}

// generatePRD responds with the document as JSON, or as a markdown attachment when the client accepts
// text/markdown.
func (app *application) generatePRD(w http.ResponseWriter, r *http.Request) {
	var req validation.PRD
	if !app.decodeJSON(w, r, &req) || !app.validate(w, r, req) {
		return
	}

	doc, err := app.prdGenerator.Generate(req.FeatureIdea)
	if errors.Is(err, prd.ErrFeatureIdeaTooShort) {
		app.writeJSONError(w, http.StatusBadRequest, errorResponse{
			Message: err.Error(),
			Errors:  []validation.Violation{{Field: "featureIdea", Message: err.Error()}},
		})
		return
	}
	if err != nil {
		app.apiServerError(w, r, errors.Wrap(err, "generate PRD"), "Failed to generate PRD")
		return
	}
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "generated PRD", slog.String("prd_id", doc.ID))

	if acceptsMarkdown(r) {
		app.writeMarkdown(w, doc)
		return
	}
	app.writeJSON(w, r, http.StatusOK, doc, "Failed to generate PRD")
}

func acceptsMarkdown(r *http.Request) bool {
	for _, accept := range strings.Split(r.Header.Get("Accept"), ",") {
		if mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(accept)); err == nil && mediaType == "text/markdown" {
			return true
		}
	}
	return false
}

type assessmentResponse struct {
	Summary models.AssessmentSummary `json:"summary"`
	Results []models.PlatformROI     `json:"results"`
}

func (app *application) calculateAssessment(w http.ResponseWriter, r *http.Request) {
	var req validation.Assessment
	if !app.decodeJSON(w, r, &req) || !app.validate(w, r, req) {
		return
	}
	departments := req.Models()
	app.writeJSON(w, r, http.StatusOK, assessmentResponse{
		Summary: scoring.Summarize(departments),
		Results: scoring.RankPlatformROI(departments, app.catalog.Benchmarks()),
	}, "Failed to calculate assessment")
}

type profilesResponse struct {
	Roles            []models.Role            `json:"roles"`
	Profiles         []models.RoleProfile     `json:"profiles"`
	DeploymentPhases []models.DeploymentPhase `json:"deploymentPhases"`
	SecurityFeatures []string                 `json:"securityFeatures"`
	KeyCapabilities  []string                 `json:"keyCapabilities"`
}

// listProfiles returns the role knowledge base. The optional role query parameter narrows the profiles.
func (app *application) listProfiles(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	app.writeJSON(w, r, http.StatusOK, profilesResponse{
		Roles:            app.catalog.Roles(),
		Profiles:         app.catalog.RoleProfiles(role),
		DeploymentPhases: app.catalog.DeploymentPhases(),
		SecurityFeatures: app.catalog.SecurityFeatures(),
		KeyCapabilities:  app.catalog.KeyCapabilities(),
	}, "Failed to fetch profiles")
}

type authStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

func (app *application) authStatus(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, authStatusResponse{
		Authenticated: contexthelpers.IsAuthenticated(r.Context()),
	}, "Failed to fetch auth status")
}
