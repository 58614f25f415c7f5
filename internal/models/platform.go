package models

import "slices"

// Category groups platforms by their primary positioning.
type Category string

const (
	CategoryFoundation   Category = "Foundation"
	CategorySpecialized  Category = "Specialized"
	CategoryEnterprise   Category = "Enterprise"
	CategoryDeveloper    Category = "Developer"
	CategoryProductivity Category = "Productivity"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFoundation, CategorySpecialized, CategoryEnterprise, CategoryDeveloper, CategoryProductivity,
}

// Priority is the adoption priority tier of a platform.
type Priority string

const (
	PriorityTier1 Priority = "Tier 1"
	PriorityTier2 Priority = "Tier 2"
	PriorityTier3 Priority = "Tier 3"
)

// Priorities lists every priority in display order.
var Priorities = []Priority{PriorityTier1, PriorityTier2, PriorityTier3}

// Capability names one dimension of the capability vector.
type Capability string

const (
	CodeGeneration        Capability = "codeGeneration"
	Reasoning             Capability = "reasoning"
	LanguageUnderstanding Capability = "languageUnderstanding"
	Multimodal            Capability = "multimodal"
	ToolUse               Capability = "toolUse"
	Speed                 Capability = "speed"
	CostEfficiency        Capability = "costEfficiency"
	EnterpriseFeatures    Capability = "enterpriseFeatures"
	DeveloperExperience   Capability = "developerExperience"
	Documentation         Capability = "documentation"
)

// AllCapabilities lists the capability vector in display order.
var AllCapabilities = []Capability{
	CodeGeneration, Reasoning, LanguageUnderstanding, Multimodal, ToolUse,
	Speed, CostEfficiency, EnterpriseFeatures, DeveloperExperience, Documentation,
}

// CapabilityGroup is a named subset of the capability vector used to filter the matrix.
type CapabilityGroup struct {
	Name         string
	Capabilities []Capability
}

// CapabilityGroups lists the matrix filter groups. Together they cover every capability once.
var CapabilityGroups = []CapabilityGroup{
	{
		Name:         "Core Capabilities",
		Capabilities: []Capability{CodeGeneration, Reasoning, LanguageUnderstanding, Multimodal, ToolUse, Speed},
	},
	{
		Name:         "Enterprise & Cost",
		Capabilities: []Capability{CostEfficiency, EnterpriseFeatures, DeveloperExperience, Documentation},
	},
}

var capabilityLabels = map[Capability]string{
	CodeGeneration:        "Code Generation",
	Reasoning:             "Reasoning",
	LanguageUnderstanding: "Language Understanding",
	Multimodal:            "Multimodal",
	ToolUse:               "Tool Use",
	Speed:                 "Speed",
	CostEfficiency:        "Cost Efficiency",
	EnterpriseFeatures:    "Enterprise Features",
	DeveloperExperience:   "Developer Experience",
	Documentation:         "Documentation",
}

// Label returns the human-readable name of the capability.
func (c Capability) Label() string {
	if label, ok := capabilityLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the ten known capabilities.
func (c Capability) Valid() bool {
	_, ok := capabilityLabels[c]
	return ok
}

// Capabilities is the capability vector. Every score is an integer in [1, 10].
type Capabilities struct {
	CodeGeneration        int `json:"codeGeneration" yaml:"codeGeneration"`
	Reasoning             int `json:"reasoning" yaml:"reasoning"`
	LanguageUnderstanding int `json:"languageUnderstanding" yaml:"languageUnderstanding"`
	Multimodal            int `json:"multimodal" yaml:"multimodal"`
	ToolUse               int `json:"toolUse" yaml:"toolUse"`
	Speed                 int `json:"speed" yaml:"speed"`
	CostEfficiency        int `json:"costEfficiency" yaml:"costEfficiency"`
	EnterpriseFeatures    int `json:"enterpriseFeatures" yaml:"enterpriseFeatures"`
	DeveloperExperience   int `json:"developerExperience" yaml:"developerExperience"`
	Documentation         int `json:"documentation" yaml:"documentation"`
}

// Score returns the score for capability c and false for unknown capabilities.
func (c Capabilities) Score(capability Capability) (int, bool) {
	switch capability {
	case CodeGeneration:
		return c.CodeGeneration, true
	case Reasoning:
		return c.Reasoning, true
	case LanguageUnderstanding:
		return c.LanguageUnderstanding, true
	case Multimodal:
		return c.Multimodal, true
	case ToolUse:
		return c.ToolUse, true
	case Speed:
		return c.Speed, true
	case CostEfficiency:
		return c.CostEfficiency, true
	case EnterpriseFeatures:
		return c.EnterpriseFeatures, true
	case DeveloperExperience:
		return c.DeveloperExperience, true
	case Documentation:
		return c.Documentation, true
	default:
		return 0, false
	}
}

// Platform is one AI assistant product in the catalog.
type Platform struct {
	ID            string       `json:"id" yaml:"id"`
	Name          string       `json:"name" yaml:"name"`
	Category      Category     `json:"category" yaml:"category"`
	Priority      Priority     `json:"priority" yaml:"priority"`
	Verdict       string       `json:"verdict" yaml:"verdict"`
	MarketShare   string       `json:"marketShare" yaml:"marketShare"`
	Pricing       string       `json:"pricing" yaml:"pricing"`
	ContextWindow string       `json:"contextWindow" yaml:"contextWindow"`
	Compliance    []string     `json:"compliance" yaml:"compliance"`
	TargetUsers   string       `json:"targetUsers" yaml:"targetUsers"`
	Capabilities  Capabilities `json:"capabilities" yaml:"capabilities"`
	LogoColor     string       `json:"logoColor" yaml:"logoColor"`
}

// Clone returns a deep copy of the platform.
func (p Platform) Clone() Platform {
	p.Compliance = slices.Clone(p.Compliance)
	return p
}

// StrategyTier groups platform ids into an adoption-sequencing bucket.
type StrategyTier struct {
	Tier        int      `json:"tier" yaml:"tier"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Platforms   []string `json:"platforms" yaml:"platforms"`
	Rationale   string   `json:"rationale" yaml:"rationale"`
}

// Clone returns a deep copy of the tier.
func (t StrategyTier) Clone() StrategyTier {
	t.Platforms = slices.Clone(t.Platforms)
	return t
}
