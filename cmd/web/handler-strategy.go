package main

import (
	"github.com/intinc/platformexplorer/internal/models"
	"net/http"
)

type resolvedTier struct {
	models.StrategyTier
	Resolved []models.Platform
}

type strategyPageData struct {
	Tiers []resolvedTier
}

func (app *application) strategyData(_ *http.Request) (any, error) {
	tiers := app.catalog.StrategyTiers()
	data := strategyPageData{Tiers: make([]resolvedTier, len(tiers))}
	for i, t := range tiers {
		data.Tiers[i] = resolvedTier{StrategyTier: t, Resolved: app.catalog.TierPlatforms(t)}
	}
	return data, nil
}
