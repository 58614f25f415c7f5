package catalog

import (
	"github.com/intinc/platformexplorer/internal/models"
	"strings"
)

// FilterAll is the filter value that does not constrain a field.
const FilterAll = "all"

// Filter narrows the Explorer list. Empty fields and [FilterAll] match everything.
type Filter struct {
	Query    string
	Category string
	Priority string
}

// Match reports whether p passes the filter. Query matches name, verdict and target users case-insensitively.
func (f Filter) Match(p models.Platform) bool {
	if f.Category != "" && f.Category != FilterAll && string(p.Category) != f.Category {
		return false
	}
	if f.Priority != "" && f.Priority != FilterAll && string(p.Priority) != f.Priority {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Verdict), q) ||
		strings.Contains(strings.ToLower(p.TargetUsers), q)
}

// Apply returns the platforms matching f, preserving order.
func (f Filter) Apply(platforms []models.Platform) []models.Platform {
	out := make([]models.Platform, 0, len(platforms))
	for _, p := range platforms {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}
