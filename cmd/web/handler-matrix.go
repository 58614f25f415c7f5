package main

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

type matrixRow struct {
	Platform models.Platform
	Cells    []scoreCell
	Average  int
	Best     bool
}

type matrixGroup struct {
	Name   string
	URL    string
	Slug   string
	Active bool
}

type matrixFeature struct {
	Capability models.Capability
	Visible    bool
}

type matrixPageData struct {
	Rows     []matrixRow
	Visible  []models.Capability
	Groups   []matrixGroup
	Features []matrixFeature
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

func slug(name string) string {
	return strings.Trim(slugSeparators.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// visibleCapabilities returns the known capabilities among the feature query values in display order. No known
// capability shows all of them.
func visibleCapabilities(features []string) []models.Capability {
	visible := make([]models.Capability, 0, len(models.AllCapabilities))
	for _, capability := range models.AllCapabilities {
		if slices.Contains(features, string(capability)) {
			visible = append(visible, capability)
		}
	}
	if len(visible) == 0 {
		return slices.Clone(models.AllCapabilities)
	}
	return visible
}

func matrixURL(capabilities []models.Capability) string {
	if len(capabilities) == len(models.AllCapabilities) {
		return "/matrix"
	}
	query := url.Values{}
	for _, capability := range capabilities {
		query.Add("feature", string(capability))
	}
	return "/matrix?" + query.Encode()
}

func (app *application) matrixData(r *http.Request) (any, error) {
	visible := visibleCapabilities(r.URL.Query()["feature"])
	platforms := app.catalog.Platforms()

	highest := make([]int, len(visible))
	for i, capability := range visible {
		if best := scoring.HighestScore(platforms, capability); best >= 0 {
			highest[i], _ = platforms[best].Capabilities.Score(capability)
		}
	}
	bestAverage := scoring.HighestAverage(platforms, visible...)

	data := matrixPageData{Visible: visible, Rows: make([]matrixRow, len(platforms))}
	for i, p := range platforms {
		cells := make([]scoreCell, len(visible))
		for j, capability := range visible {
			score, _ := p.Capabilities.Score(capability)
			cells[j] = scoreCell{Score: score, Band: scoreBand(score), Best: score == highest[j]}
		}
		data.Rows[i] = matrixRow{
			Platform: p,
			Cells:    cells,
			Average:  scoring.AverageScore(p.Capabilities, visible...),
			Best:     i == bestAverage,
		}
	}

	data.Groups = append(data.Groups, matrixGroup{
		Name:   "All",
		URL:    matrixURL(models.AllCapabilities),
		Slug:   "all",
		Active: len(visible) == len(models.AllCapabilities),
	})
	for _, g := range models.CapabilityGroups {
		data.Groups = append(data.Groups, matrixGroup{
			Name:   g.Name,
			URL:    matrixURL(g.Capabilities),
			Slug:   slug(g.Name),
			Active: slices.Equal(g.Capabilities, visible),
		})
	}
	for _, capability := range models.AllCapabilities {
		data.Features = append(data.Features, matrixFeature{
			Capability: capability,
			Visible:    slices.Contains(visible, capability),
		})
	}
	return data, nil
}
