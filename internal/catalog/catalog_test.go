package catalog_test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/intinc/platformexplorer/internal/catalog"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"testing"
	"testing/fstest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func mustDefault(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func platformIDs(platforms []models.Platform) []string {
	ids := make([]string, len(platforms))
	for i, p := range platforms {
		ids[i] = p.ID
	}
	return ids
}

func TestDefault(t *testing.T) {
	c := mustDefault(t)

	platforms := c.Platforms()
	require.Len(t, platforms, 16)
	require.Equal(t, []string{
		"claude-sonnet", "chatgpt-enterprise", "gemini-advanced", "microsoft-copilot",
		"github-copilot", "perplexity-pro", "anthropic-api", "openai-api",
		"aws-bedrock", "azure-openai", "cohere", "huggingface",
		"jasper", "copy-ai", "notion-ai", "slack-ai",
	}, platformIDs(platforms))

	for _, p := range platforms {
		for _, capability := range models.AllCapabilities {
			score, ok := p.Capabilities.Score(capability)
			require.True(t, ok)
			require.GreaterOrEqual(t, score, 1, "%s %s", p.ID, capability)
			require.LessOrEqual(t, score, 10, "%s %s", p.ID, capability)
		}
	}

	tiers := c.StrategyTiers()
	require.Len(t, tiers, 3)
	require.Equal(t, "Foundation", tiers[0].Name)
	require.Equal(t, []string{"claude-sonnet", "chatgpt-enterprise", "github-copilot", "microsoft-copilot"},
		tiers[0].Platforms)
	for _, tier := range tiers {
		require.Len(t, c.TierPlatforms(tier), len(tier.Platforms))
	}

	require.Len(t, c.Departments(), 10)
	require.Len(t, c.Benchmarks().Platforms, 4)
	require.Len(t, c.RoleProfiles(models.RoleAll), 6)
	require.Len(t, c.RoleProfiles("Finance"), 1)
	require.Empty(t, c.RoleProfiles("Legal"))
	require.Len(t, c.DeploymentPhases(), 4)
	require.Len(t, c.Roles(), 7)
}

func TestPlatform(t *testing.T) {
	c := mustDefault(t)

	p, err := c.Platform("claude-sonnet")
	require.NoError(t, err)
	require.Equal(t, "Claude (Sonnet 4)", p.Name)
	require.Equal(t, models.CategoryFoundation, p.Category)
	require.Equal(t, 10, p.Capabilities.CodeGeneration)
	require.Equal(t, []string{"SOC2", "HIPAA", "GDPR"}, p.Compliance)

	_, err = c.Platform("nonexistent")
	require.ErrorIs(t, err, catalog.ErrPlatformNotFound)
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := mustDefault(t)

	platforms := c.Platforms()
	platforms[0].Name = "mutated"
	platforms[0].Compliance[0] = "mutated"
	tiers := c.StrategyTiers()
	tiers[0].Platforms[0] = "mutated"
	benchmarks := c.Benchmarks()
	benchmarks.WeeklyHoursSaved["Sales"]["google_gemini"] = 100
	profiles := c.RoleProfiles(models.RoleAll)
	profiles[0].CommonRequests[0].Process[0] = "mutated"

	if diff := cmp.Diff(mustDefault(t).Platforms()[0].Compliance, []string{"SOC2", "HIPAA", "GDPR"}); diff != "" {
		t.Fatalf("compliance mutated (-got +want):\n%s", diff)
	}
	require.Equal(t, "Claude (Sonnet 4)", c.Platforms()[0].Name)
	require.Equal(t, "claude-sonnet", c.StrategyTiers()[0].Platforms[0])
	require.InDelta(t, 4.2, c.Benchmarks().WeeklyHoursSaved["Sales"]["google_gemini"], 0)
	require.Equal(t, "Ask for Q4 P&L and budget file", c.RoleProfiles("Finance")[0].CommonRequests[0].Process[0])
}

func TestPlatformsByIDs(t *testing.T) {
	c := mustDefault(t)

	tests := []struct {
		name        string
		ids         []string
		wantFound   []string
		wantMissing []string
	}{
		{
			name:        "all found in catalog order",
			ids:         []string{"slack-ai", "claude-sonnet"},
			wantFound:   []string{"claude-sonnet", "slack-ai"},
			wantMissing: nil,
		},
		{
			name:        "partial match",
			ids:         []string{"claude-sonnet", "chatgpt-enterprise", "nonexistent"},
			wantFound:   []string{"claude-sonnet", "chatgpt-enterprise"},
			wantMissing: []string{"nonexistent"},
		},
		{
			name:        "none found",
			ids:         []string{"nope", "nada"},
			wantFound:   []string{},
			wantMissing: []string{"nope", "nada"},
		},
		{
			name:        "duplicates collapse",
			ids:         []string{"cohere", "cohere", "ghost", "ghost"},
			wantFound:   []string{"cohere"},
			wantMissing: []string{"ghost"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, missing := c.PlatformsByIDs(tt.ids)
			require.Equal(t, tt.wantFound, platformIDs(found))
			require.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestFilter(t *testing.T) {
	c := mustDefault(t)

	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{
			name:   "query matches name verdict and target users",
			filter: catalog.Filter{Query: "  RESEARCH "},
			want:   []string{"claude-sonnet", "gemini-advanced", "perplexity-pro", "huggingface"},
		},
		{
			name:   "category",
			filter: catalog.Filter{Category: "Developer", Priority: catalog.FilterAll},
			want:   []string{"anthropic-api", "openai-api", "cohere", "huggingface"},
		},
		{
			name:   "priority",
			filter: catalog.Filter{Priority: "Tier 1"},
			want:   []string{"claude-sonnet", "chatgpt-enterprise", "gemini-advanced", "microsoft-copilot", "github-copilot"},
		},
		{
			name:   "combined",
			filter: catalog.Filter{Category: "Developer", Priority: "Tier 3"},
			want:   []string{"cohere", "huggingface"},
		},
		{
			name:   "no match",
			filter: catalog.Filter{Query: "quantum"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, platformIDs(tt.filter.Apply(c.Platforms())))
		})
	}
}

const validAssessment = `
departments: [Sales]
complianceStandards: []
integrationCategories: []
painPoints: []
benchmarkPlatforms:
  - {id: google_gemini, name: Google Gemini, color: "#4285F4", monthlyPrice: 20}
weeklyHoursSaved:
  Sales: {google_gemini: 4.2}
`

const validProfiles = `
roles: []
securityFeatures: []
keyCapabilities: []
roleProfiles: []
deploymentPhases: []
`

func platformYAML(score string, tierPlatform string) string {
	return `
platforms:
  - id: one
    name: One
    category: Foundation
    priority: Tier 1
    verdict: ""
    marketShare: ""
    pricing: ""
    contextWindow: ""
    compliance: []
    targetUsers: ""
    capabilities:
      codeGeneration: ` + score + `
      reasoning: 5
      languageUnderstanding: 5
      multimodal: 5
      toolUse: 5
      speed: 5
      costEfficiency: 5
      enterpriseFeatures: 5
      developerExperience: 5
      documentation: 5
    logoColor: "#000000"
strategyTiers:
  - tier: 1
    name: Foundation
    description: ""
    platforms: [` + tierPlatform + `]
    rationale: ""
`
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		platforms string
		wantErr   error
	}{
		{name: "valid", platforms: platformYAML("5", "one"), wantErr: nil},
		{name: "score too high", platforms: platformYAML("11", "one"), wantErr: catalog.ErrInvalidCatalog},
		{name: "score too low", platforms: platformYAML("0", "one"), wantErr: catalog.ErrInvalidCatalog},
		{name: "unknown tier platform", platforms: platformYAML("5", "ghost"), wantErr: catalog.ErrInvalidCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"data/platforms.yaml":  {Data: []byte(tt.platforms)},
				"data/assessment.yaml": {Data: []byte(validAssessment)},
				"data/profiles.yaml":   {Data: []byte(validProfiles)},
			}
			c, err := catalog.Load(fsys)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, c.Platforms(), 1)
		})
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"data/platforms.yaml":  {Data: []byte(platformYAML("5", "one") + "extra: true\n")},
		"data/assessment.yaml": {Data: []byte(validAssessment)},
		"data/profiles.yaml":   {Data: []byte(validProfiles)},
	}
	_, err := catalog.Load(fsys)
	require.Error(t, err)
}
