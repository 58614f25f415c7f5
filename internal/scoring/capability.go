// Package scoring implements the capability averages and the two ROI models as pure functions.
package scoring

import (
	"github.com/intinc/platformexplorer/internal/models"
)

// AverageScore is the mean of the given capabilities rounded to the nearest integer. Without fields, or when none
// of the fields is a known capability, all ten capabilities are averaged.
func AverageScore(c models.Capabilities, fields ...models.Capability) int {
	var sum, count int
	for _, field := range fields {
		if score, ok := c.Score(field); ok {
			sum += score
			count++
		}
	}
	if count == 0 {
		for _, field := range models.AllCapabilities {
			score, _ := c.Score(field)
			sum += score
			count++
		}
	}
	return int(round(float64(sum) / float64(count)))
}

// HighestAverage returns the index of the platform with the highest AverageScore over fields. The first maximum
// wins ties. It returns -1 for an empty slice.
func HighestAverage(platforms []models.Platform, fields ...models.Capability) int {
	best, bestScore := -1, 0
	for i, p := range platforms {
		if score := AverageScore(p.Capabilities, fields...); best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// HighestScore returns the index of the platform with the highest score for capability, first maximum wins.
func HighestScore(platforms []models.Platform, capability models.Capability) int {
	best, bestScore := -1, 0
	for i, p := range platforms {
		if score, _ := p.Capabilities.Score(capability); best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
