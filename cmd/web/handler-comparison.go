package main

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"net/http"
)

type comparisonRow struct {
	Capability models.Capability
	Cells      []scoreCell
}

type comparisonPageData struct {
	Platforms    []models.Platform
	Averages     []int
	Best         int
	MaxSelection int
	Rows         []comparisonRow
}

func (app *application) comparisonData(r *http.Request) (any, error) {
	selection := app.selection(r.Context())
	data := comparisonPageData{MaxSelection: sessionstate.MaxSelection, Best: -1}

	// Columns follow the order platforms were picked in.
	for _, id := range selection.IDs {
		if p, err := app.catalog.Platform(id); err == nil {
			data.Platforms = append(data.Platforms, p)
		}
	}
	if len(data.Platforms) == 0 {
		return data, nil
	}

	data.Averages = make([]int, len(data.Platforms))
	for i, p := range data.Platforms {
		data.Averages[i] = scoring.AverageScore(p.Capabilities)
	}
	data.Best = scoring.HighestAverage(data.Platforms)
	data.Rows = make([]comparisonRow, len(models.AllCapabilities))
	for i, capability := range models.AllCapabilities {
		data.Rows[i] = comparisonRow{Capability: capability, Cells: scoreCells(data.Platforms, capability)}
	}
	return data, nil
}

// scoreCells returns the scores of capability for every platform. Every cell holding the column maximum is marked
// best.
func scoreCells(platforms []models.Platform, capability models.Capability) []scoreCell {
	var highest int
	if best := scoring.HighestScore(platforms, capability); best >= 0 {
		highest, _ = platforms[best].Capabilities.Score(capability)
	}
	cells := make([]scoreCell, len(platforms))
	for i, p := range platforms {
		score, _ := p.Capabilities.Score(capability)
		cells[i] = scoreCell{Score: score, Band: scoreBand(score), Best: score == highest}
	}
	return cells
}

func (app *application) clearSelection(w http.ResponseWriter, r *http.Request) {
	selection := app.selection(r.Context())
	selection.Clear()
	app.putSelection(r.Context(), selection)
	http.Redirect(w, r, "/comparison", http.StatusSeeOther)
}
