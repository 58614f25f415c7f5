package sessionstate

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"log/slog"
	"strings"
	"time"
)

// Wizard steps.
const (
	StepOrganization = iota + 1
	StepDepartments
	StepCompliance
	StepIntegrations
	StepPainPoints
)

// TotalSteps is the number of input steps before the results.
const TotalSteps = StepPainPoints

var (
	ErrStepIncomplete    = errors.NewSentinel("Complete the current step before continuing")
	ErrUnknownDepartment = errors.NewSentinel("unknown department")
)

var stepTitles = map[int]string{
	StepOrganization: "Organization",
	StepDepartments:  "Departments",
	StepCompliance:   "Compliance",
	StepIntegrations: "Integrations",
	StepPainPoints:   "Pain Points",
}

// StepTitle returns the short title of step.
func StepTitle(step int) string {
	return stepTitles[step]
}

// Wizard is the state of the department assessment.
type Wizard struct {
	Step             int
	OrganizationName string
	// AssessmentDate is formatted as YYYY-MM-DD.
	AssessmentDate string
	Departments    []models.Department
	Compliance     []string
	Integrations   []string
	PainPoints     []string
	// Completed is set once the results are shown.
	Completed bool
}

// NewWizard returns a wizard at the first step dated today.
func NewWizard(now time.Time) Wizard {
	return Wizard{
		Step:           StepOrganization,
		AssessmentDate: now.Format(time.DateOnly),
	}
}

// CanProceed reports whether the current step is complete.
func (w Wizard) CanProceed() bool {
	switch w.Step {
	case StepOrganization:
		return strings.TrimSpace(w.OrganizationName) != ""
	case StepDepartments:
		return len(w.Departments) > 0
	default:
		return true
	}
}

// Next advances to the following step. The last step stays put.
func (w *Wizard) Next() error {
	if !w.CanProceed() {
		return errors.Wrap(ErrStepIncomplete, "advance wizard", slog.Int("step", w.Step))
	}
	if w.Step < TotalSteps {
		w.Step++
	}
	return nil
}

// Back returns to the previous step. The first step stays put.
func (w *Wizard) Back() {
	w.Completed = false
	if w.Step > StepOrganization {
		w.Step--
	}
}

// Complete shows the results. It requires every gated step to be complete.
func (w *Wizard) Complete() error {
	if strings.TrimSpace(w.OrganizationName) == "" || len(w.Departments) == 0 {
		return errors.Wrap(ErrStepIncomplete, "complete wizard")
	}
	w.Step = TotalSteps
	w.Completed = true
	return nil
}

// AddDepartment appends d. isDepartment reports whether a department name is known.
func (w *Wizard) AddDepartment(d models.Department, isDepartment func(string) bool) error {
	if !isDepartment(d.Name) {
		return errors.Wrap(ErrUnknownDepartment, "add department", slog.String("department", d.Name))
	}
	w.Departments = append(w.Departments, d)
	return nil
}

// RemoveDepartment removes the department at index i. Out of range indices are ignored.
func (w *Wizard) RemoveDepartment(i int) {
	if i < 0 || i >= len(w.Departments) {
		return
	}
	w.Departments = append(w.Departments[:i:i], w.Departments[i+1:]...)
}

func (w *Wizard) ToggleCompliance(standard string) {
	w.Compliance, _ = toggle(w.Compliance, standard)
}

func (w *Wizard) ToggleIntegration(integration string) {
	w.Integrations, _ = toggle(w.Integrations, integration)
}

func (w *Wizard) TogglePainPoint(painPoint string) {
	w.PainPoints, _ = toggle(w.PainPoints, painPoint)
}
