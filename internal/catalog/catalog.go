// Package catalog holds the static reference data of the application: the platform catalog, strategy tiers,
// assessment benchmarks and the role knowledge base.
//
// The data is embedded as YAML, decoded and validated once, and only handed out as copies.
package catalog

import (
	"bytes"
	"embed"
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"gopkg.in/yaml.v3"
	"io/fs"
	"log/slog"
	"maps"
	"slices"
	"sync"
)

//go:embed data/*.yaml
var dataFS embed.FS

var ErrPlatformNotFound = errors.NewSentinel("platform not found")

type platformsFile struct {
	Platforms     []models.Platform     `yaml:"platforms"`
	StrategyTiers []models.StrategyTier `yaml:"strategyTiers"`
}

type assessmentFile struct {
	Departments           []string                       `yaml:"departments"`
	ComplianceStandards   []string                       `yaml:"complianceStandards"`
	IntegrationCategories []models.IntegrationCategory   `yaml:"integrationCategories"`
	PainPoints            []string                       `yaml:"painPoints"`
	BenchmarkPlatforms    []models.BenchmarkPlatform     `yaml:"benchmarkPlatforms"`
	WeeklyHoursSaved      map[string]map[string]float64 `yaml:"weeklyHoursSaved"`
}

type profilesFile struct {
	Roles            []models.Role            `yaml:"roles"`
	SecurityFeatures []string                 `yaml:"securityFeatures"`
	KeyCapabilities  []string                 `yaml:"keyCapabilities"`
	RoleProfiles     []models.RoleProfile     `yaml:"roleProfiles"`
	DeploymentPhases []models.DeploymentPhase `yaml:"deploymentPhases"`
}

// Catalog is the immutable reference data. The zero value is not usable, see [Load] and [Default].
type Catalog struct {
	platforms  []models.Platform
	index      map[string]int
	tiers      []models.StrategyTier
	assessment assessmentFile
	profiles   profilesFile
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(dataFS)
})

// Default returns the catalog built from the embedded data. It is loaded on first use and shared afterwards.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load decodes and validates the catalog from fsys, which must contain data/platforms.yaml,
// data/assessment.yaml and data/profiles.yaml.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		pf  platformsFile
		af  assessmentFile
		prf profilesFile
		err error
	)
	if err = decodeFile(fsys, "data/platforms.yaml", &pf); err != nil {
		return nil, err
	}
	if err = decodeFile(fsys, "data/assessment.yaml", &af); err != nil {
		return nil, err
	}
	if err = decodeFile(fsys, "data/profiles.yaml", &prf); err != nil {
		return nil, err
	}

	c := &Catalog{
		platforms:  pf.Platforms,
		index:      make(map[string]int, len(pf.Platforms)),
		tiers:      pf.StrategyTiers,
		assessment: af,
		profiles:   prf,
	}
	for i, p := range c.platforms {
		c.index[p.ID] = i
	}
	if err = c.validate(); err != nil {
		return nil, errors.Wrap(err, "validate catalog")
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrap(err, "read catalog file", slog.String("file", name))
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode catalog file", slog.String("file", name))
	}
	return nil
}

// Platforms returns every platform in catalog order.
func (c *Catalog) Platforms() []models.Platform {
	out := make([]models.Platform, len(c.platforms))
	for i, p := range c.platforms {
		out[i] = p.Clone()
	}
	return out
}

// Platform looks up a platform by id.
func (c *Catalog) Platform(id string) (models.Platform, error) {
	i, ok := c.index[id]
	if !ok {
		return models.Platform{}, errors.Wrap(ErrPlatformNotFound, "lookup platform", slog.String("platform_id", id))
	}
	return c.platforms[i].Clone(), nil
}

// PlatformsByIDs resolves ids to platforms. Matches are returned in catalog order and missing ids in request
// order; duplicate ids are reported once.
func (c *Catalog) PlatformsByIDs(ids []string) ([]models.Platform, []string) {
	var (
		wanted  = make(map[string]bool, len(ids))
		missing []string
	)
	for _, id := range ids {
		if wanted[id] {
			continue
		}
		wanted[id] = true
		if _, ok := c.index[id]; !ok {
			missing = append(missing, id)
		}
	}
	found := make([]models.Platform, 0, len(ids))
	for _, p := range c.platforms {
		if wanted[p.ID] {
			found = append(found, p.Clone())
		}
	}
	return found, missing
}

// StrategyTiers returns the adoption tiers ordered by tier number.
func (c *Catalog) StrategyTiers() []models.StrategyTier {
	out := make([]models.StrategyTier, len(c.tiers))
	for i, t := range c.tiers {
		out[i] = t.Clone()
	}
	return out
}

// TierPlatforms resolves the platform ids of a tier.
func (c *Catalog) TierPlatforms(tier models.StrategyTier) []models.Platform {
	out := make([]models.Platform, 0, len(tier.Platforms))
	for _, id := range tier.Platforms {
		if i, ok := c.index[id]; ok {
			out = append(out, c.platforms[i].Clone())
		}
	}
	return out
}

// Categories returns the platform categories in display order.
func (c *Catalog) Categories() []models.Category {
	return slices.Clone(models.Categories)
}

// Priorities returns the priority tiers in display order.
func (c *Catalog) Priorities() []models.Priority {
	return slices.Clone(models.Priorities)
}

func (c *Catalog) Departments() []string {
	return slices.Clone(c.assessment.Departments)
}

// IsDepartment reports whether name is one of the fixed assessment departments.
func (c *Catalog) IsDepartment(name string) bool {
	return slices.Contains(c.assessment.Departments, name)
}

func (c *Catalog) ComplianceStandards() []string {
	return slices.Clone(c.assessment.ComplianceStandards)
}

func (c *Catalog) IntegrationCategories() []models.IntegrationCategory {
	out := make([]models.IntegrationCategory, len(c.assessment.IntegrationCategories))
	for i, ic := range c.assessment.IntegrationCategories {
		out[i] = models.IntegrationCategory{Name: ic.Name, Systems: slices.Clone(ic.Systems)}
	}
	return out
}

func (c *Catalog) PainPoints() []string {
	return slices.Clone(c.assessment.PainPoints)
}

// Benchmarks returns the department assessment benchmark table.
func (c *Catalog) Benchmarks() models.Benchmarks {
	hours := make(map[string]map[string]float64, len(c.assessment.WeeklyHoursSaved))
	for dept, perPlatform := range c.assessment.WeeklyHoursSaved {
		hours[dept] = maps.Clone(perPlatform)
	}
	return models.Benchmarks{
		Platforms:        slices.Clone(c.assessment.BenchmarkPlatforms),
		WeeklyHoursSaved: hours,
	}
}

func (c *Catalog) Roles() []models.Role {
	return slices.Clone(c.profiles.Roles)
}

// RoleProfiles returns the profiles of role, or every profile for [models.RoleAll] and the empty string.
func (c *Catalog) RoleProfiles(role string) []models.RoleProfile {
	out := make([]models.RoleProfile, 0, len(c.profiles.RoleProfiles))
	for _, p := range c.profiles.RoleProfiles {
		if role != "" && role != models.RoleAll && p.Role != role {
			continue
		}
		out = append(out, cloneRoleProfile(p))
	}
	return out
}

func (c *Catalog) DeploymentPhases() []models.DeploymentPhase {
	out := make([]models.DeploymentPhase, len(c.profiles.DeploymentPhases))
	for i, p := range c.profiles.DeploymentPhases {
		out[i] = models.DeploymentPhase{Phase: p.Phase, Title: p.Title, Items: slices.Clone(p.Items)}
	}
	return out
}

func (c *Catalog) SecurityFeatures() []string {
	return slices.Clone(c.profiles.SecurityFeatures)
}

func (c *Catalog) KeyCapabilities() []string {
	return slices.Clone(c.profiles.KeyCapabilities)
}

func cloneRoleProfile(p models.RoleProfile) models.RoleProfile {
	p.Capabilities = slices.Clone(p.Capabilities)
	p.Features = models.FeatureToggles{
		Enabled:  slices.Clone(p.Features.Enabled),
		Disabled: slices.Clone(p.Features.Disabled),
	}
	p.Tools = slices.Clone(p.Tools)
	p.EscalationRules = slices.Clone(p.EscalationRules)
	requests := make([]models.CommonRequest, len(p.CommonRequests))
	for i, r := range p.CommonRequests {
		requests[i] = models.CommonRequest{Request: r.Request, Process: slices.Clone(r.Process)}
	}
	p.CommonRequests = requests
	return p
}
