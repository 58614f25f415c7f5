package models

// Role is a department role in the deployment knowledge base. RoleAll selects every profile.
type Role struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

const RoleAll = "All"

type FeatureToggles struct {
	Enabled  []string `json:"enabled" yaml:"enabled"`
	Disabled []string `json:"disabled" yaml:"disabled"`
}

type CommonRequest struct {
	Request string   `json:"request" yaml:"request"`
	Process []string `json:"process" yaml:"process"`
}

// RoleProfile describes how an assistant is configured for one role.
type RoleProfile struct {
	Role             string          `json:"role" yaml:"role"`
	Icon             string          `json:"icon" yaml:"icon"`
	Color            string          `json:"color" yaml:"color"`
	Responsibilities string          `json:"responsibilities" yaml:"responsibilities"`
	Capabilities     []string        `json:"capabilities" yaml:"capabilities"`
	Features         FeatureToggles  `json:"features" yaml:"features"`
	Tools            []string        `json:"tools" yaml:"tools"`
	EscalationRules  []string        `json:"escalationRules" yaml:"escalationRules"`
	CommonRequests   []CommonRequest `json:"commonRequests" yaml:"commonRequests"`
}

// DeploymentPhase is one phase of the rollout checklist.
type DeploymentPhase struct {
	Phase int      `json:"phase" yaml:"phase"`
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

// IntegrationCategory groups systems the assessment can integrate with.
type IntegrationCategory struct {
	Name    string   `json:"name" yaml:"name"`
	Systems []string `json:"systems" yaml:"systems"`
}
