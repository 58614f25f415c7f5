package scoring_test

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func uniform(score int) models.Capabilities {
	return models.Capabilities{
		CodeGeneration:        score,
		Reasoning:             score,
		LanguageUnderstanding: score,
		Multimodal:            score,
		ToolUse:               score,
		Speed:                 score,
		CostEfficiency:        score,
		EnterpriseFeatures:    score,
		DeveloperExperience:   score,
		Documentation:         score,
	}
}

func TestAverageScore(t *testing.T) {
	claude := models.Capabilities{
		CodeGeneration:        10,
		Reasoning:             10,
		LanguageUnderstanding: 9,
		Multimodal:            8,
		ToolUse:               9,
		Speed:                 8,
		CostEfficiency:        8,
		EnterpriseFeatures:    9,
		DeveloperExperience:   9,
		Documentation:         9,
	}

	tests := []struct {
		name   string
		c      models.Capabilities
		fields []models.Capability
		want   int
	}{
		{name: "all fields rounds 8.9 up", c: claude, want: 9},
		{name: "uniform", c: uniform(7), want: 7},
		{name: "half rounds up", c: claude, fields: []models.Capability{models.Multimodal, models.ToolUse}, want: 9},
		{name: "subset", c: claude, fields: []models.Capability{models.Speed, models.CostEfficiency}, want: 8},
		{name: "unknown fields fall back to all", c: claude, fields: []models.Capability{"bogus"}, want: 9},
		{
			name:   "unknown fields are skipped",
			c:      claude,
			fields: []models.Capability{"bogus", models.CodeGeneration},
			want:   10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, scoring.AverageScore(tt.c, tt.fields...))
		})
	}
}

func TestHighestAverage(t *testing.T) {
	platforms := []models.Platform{
		{ID: "low", Capabilities: uniform(5)},
		{ID: "first-high", Capabilities: uniform(8)},
		{ID: "second-high", Capabilities: uniform(8)},
	}
	require.Equal(t, 1, scoring.HighestAverage(platforms))
	require.Equal(t, -1, scoring.HighestAverage(nil))

	// 7.8 and 8.2 both round to 8, so the first one wins.
	almost := uniform(8)
	almost.Speed = 7
	better := uniform(8)
	better.Speed = 9
	require.Equal(t, 0, scoring.HighestAverage([]models.Platform{
		{ID: "a", Capabilities: almost},
		{ID: "b", Capabilities: better},
	}, models.Speed, models.CostEfficiency, models.Reasoning, models.ToolUse, models.Documentation))
}

func TestHighestScore(t *testing.T) {
	a, b := uniform(5), uniform(5)
	b.Speed = 9
	require.Equal(t, 1, scoring.HighestScore([]models.Platform{{Capabilities: a}, {Capabilities: b}}, models.Speed))
	require.Equal(t, 0, scoring.HighestScore([]models.Platform{{Capabilities: a}, {Capabilities: b}}, models.Reasoning))
	require.Equal(t, -1, scoring.HighestScore(nil, models.Speed))
}
