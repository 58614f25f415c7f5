package catalog

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"log/slog"
	"slices"
)

var ErrInvalidCatalog = errors.NewSentinel("invalid catalog")

const (
	minScore = 1
	maxScore = 10
)

func (c *Catalog) validate() error {
	var errs []error
	invalid := func(msg string, attrs ...slog.Attr) {
		errs = append(errs, errors.Wrap(ErrInvalidCatalog, msg, attrs...))
	}

	if len(c.index) != len(c.platforms) {
		invalid("duplicate platform ids")
	}
	for _, p := range c.platforms {
		id := slog.String("platform_id", p.ID)
		if p.ID == "" || p.Name == "" {
			invalid("platform without id or name", id)
		}
		if !slices.Contains(models.Categories, p.Category) {
			invalid("unknown category", id, slog.String("category", string(p.Category)))
		}
		if !slices.Contains(models.Priorities, p.Priority) {
			invalid("unknown priority", id, slog.String("priority", string(p.Priority)))
		}
		for _, capability := range models.AllCapabilities {
			score, _ := p.Capabilities.Score(capability)
			if score < minScore || score > maxScore {
				invalid("capability score out of range", id,
					slog.String("capability", string(capability)), slog.Int("score", score))
			}
		}
	}

	for _, t := range c.tiers {
		for _, id := range t.Platforms {
			if _, ok := c.index[id]; !ok {
				invalid("strategy tier references unknown platform",
					slog.Int("tier", t.Tier), slog.String("platform_id", id))
			}
		}
	}

	benchmarkIDs := make([]string, 0, len(c.assessment.BenchmarkPlatforms))
	for _, bp := range c.assessment.BenchmarkPlatforms {
		benchmarkIDs = append(benchmarkIDs, bp.ID)
	}
	for dept, perPlatform := range c.assessment.WeeklyHoursSaved {
		if !slices.Contains(c.assessment.Departments, dept) {
			invalid("benchmark for unknown department", slog.String("department", dept))
		}
		for platformID := range perPlatform {
			if !slices.Contains(benchmarkIDs, platformID) {
				invalid("benchmark for unknown platform",
					slog.String("department", dept), slog.String("platform_id", platformID))
			}
		}
	}

	return errors.Join(errs...)
}
