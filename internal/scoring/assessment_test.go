package scoring_test

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/stretchr/testify/require"
	"testing"
)

func testBenchmarks() models.Benchmarks {
	return models.Benchmarks{
		Platforms: []models.BenchmarkPlatform{
			{ID: "google_gemini", Name: "Google Gemini", Color: "#4285F4", MonthlyPrice: 20},
			{ID: "microsoft_copilot", Name: "Microsoft Copilot", Color: "#00A4EF", MonthlyPrice: 30},
			{ID: "anthropic_claude", Name: "Anthropic Claude", Color: "#D97757", MonthlyPrice: 25},
			{ID: "openai_chatgpt", Name: "OpenAI ChatGPT", Color: "#10A37F", MonthlyPrice: 20},
		},
		WeeklyHoursSaved: map[string]map[string]float64{
			"Sales": {"google_gemini": 4.2, "microsoft_copilot": 5.1, "anthropic_claude": 3.8, "openai_chatgpt": 4.5},
		},
	}
}

func TestCalculatePlatformROI(t *testing.T) {
	sales := []models.Department{{Name: "Sales", UserCount: 10, HourlyRate: 50}}

	tests := []struct {
		name        string
		departments []models.Department
		platformID  string
		want        models.PlatformROI
	}{
		{
			name:        "known platform",
			departments: sales,
			platformID:  "google_gemini",
			want: models.PlatformROI{
				Platform:           "google_gemini",
				PlatformName:       "Google Gemini",
				Color:              "#4285F4",
				TotalAnnualSavings: 105000,
				TotalCost:          2400,
				NetAnnualSavings:   102600,
				OneYearROI:         4275,
				ThreeYearROI:       12825,
			},
		},
		{
			name:        "department without benchmark saves nothing",
			departments: []models.Department{{Name: "Unknown", UserCount: 5, HourlyRate: 100}},
			platformID:  "openai_chatgpt",
			want: models.PlatformROI{
				Platform:         "openai_chatgpt",
				PlatformName:     "OpenAI ChatGPT",
				Color:            "#10A37F",
				TotalCost:        1200,
				NetAnnualSavings: -1200,
				OneYearROI:       -100,
				ThreeYearROI:     -300,
			},
		},
		{
			name:        "unknown platform uses default price and its id as name",
			departments: sales,
			platformID:  "mystery",
			want: models.PlatformROI{
				Platform:         "mystery",
				PlatformName:     "mystery",
				TotalCost:        2400,
				NetAnnualSavings: -2400,
				OneYearROI:       -100,
				ThreeYearROI:     -300,
			},
		},
		{
			name:       "no departments",
			platformID: "google_gemini",
			want: models.PlatformROI{
				Platform:     "google_gemini",
				PlatformName: "Google Gemini",
				Color:        "#4285F4",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoring.CalculatePlatformROI(tt.departments, testBenchmarks(), tt.platformID)
			require.Equal(t, tt.want.Platform, got.Platform)
			require.Equal(t, tt.want.PlatformName, got.PlatformName)
			require.Equal(t, tt.want.Color, got.Color)
			require.InDelta(t, tt.want.TotalAnnualSavings, got.TotalAnnualSavings, 1e-6)
			require.InDelta(t, tt.want.TotalCost, got.TotalCost, 1e-6)
			require.InDelta(t, tt.want.NetAnnualSavings, got.NetAnnualSavings, 1e-6)
			require.InDelta(t, tt.want.OneYearROI, got.OneYearROI, 1e-6)
			require.InDelta(t, tt.want.ThreeYearROI, got.ThreeYearROI, 1e-6)
			require.False(t, got.Recommended)
		})
	}
}

func TestRankPlatformROI(t *testing.T) {
	sales := []models.Department{{Name: "Sales", UserCount: 10, HourlyRate: 50}}

	ranked := scoring.RankPlatformROI(sales, testBenchmarks())
	require.Len(t, ranked, 4)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.Platform
	}
	require.Equal(t, []string{"openai_chatgpt", "google_gemini", "microsoft_copilot", "anthropic_claude"}, ids)
	require.True(t, ranked[0].Recommended)
	for _, r := range ranked[1:] {
		require.False(t, r.Recommended)
	}
	for i := 1; i < len(ranked); i++ {
		require.GreaterOrEqual(t, ranked[i-1].OneYearROI, ranked[i].OneYearROI)
	}
}

func TestRankPlatformROIKeepsBenchmarkOrderOnTies(t *testing.T) {
	ranked := scoring.RankPlatformROI(nil, testBenchmarks())
	require.Len(t, ranked, 4)
	require.Equal(t, "google_gemini", ranked[0].Platform)
	require.True(t, ranked[0].Recommended)
	require.Equal(t, "openai_chatgpt", ranked[3].Platform)

	require.Empty(t, scoring.RankPlatformROI(nil, models.Benchmarks{}))
}

func TestSummarize(t *testing.T) {
	summary := scoring.Summarize([]models.Department{
		{Name: "Sales", UserCount: 10, HourlyRate: 50},
		{Name: "HR", UserCount: 4, HourlyRate: 40},
	})
	require.Equal(t, models.AssessmentSummary{Departments: 2, TotalUsers: 14}, summary)
	require.Equal(t, models.AssessmentSummary{}, scoring.Summarize(nil))
}
