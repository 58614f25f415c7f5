package main

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"github.com/intinc/platformexplorer/internal/validation"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type wizardStep struct {
	Number int
	Title  string
	Active bool
	Done   bool
}

type departmentForm struct {
	Name       string
	UserCount  string
	HourlyRate string
}

type assessmentPageData struct {
	Wizard                sessionstate.Wizard
	Steps                 []wizardStep
	Errors                []validation.Violation
	Summary               models.AssessmentSummary
	Results               []models.PlatformROI
	DepartmentOptions     []string
	DepartmentForm        departmentForm
	ComplianceStandards   []string
	IntegrationCategories []models.IntegrationCategory
	PainPoints            []string
	IsLastStep            bool
	CanProceed            bool
}

func (app *application) assessmentData(r *http.Request) (any, error) {
	return app.newAssessmentPageData(app.wizard(r.Context()), nil, departmentForm{}), nil
}

func (app *application) newAssessmentPageData(
	w sessionstate.Wizard,
	errs []validation.Violation,
	form departmentForm,
) assessmentPageData {
	data := assessmentPageData{
		Wizard:                w,
		Errors:                errs,
		DepartmentOptions:     app.catalog.Departments(),
		DepartmentForm:        form,
		ComplianceStandards:   app.catalog.ComplianceStandards(),
		IntegrationCategories: app.catalog.IntegrationCategories(),
		PainPoints:            app.catalog.PainPoints(),
		IsLastStep:            w.Step == sessionstate.TotalSteps,
		CanProceed:            w.CanProceed(),
	}
	for step := sessionstate.StepOrganization; step <= sessionstate.TotalSteps; step++ {
		data.Steps = append(data.Steps, wizardStep{
			Number: step,
			Title:  sessionstate.StepTitle(step),
			Active: !w.Completed && step == w.Step,
			Done:   w.Completed || step < w.Step,
		})
	}
	if w.Completed {
		data.Summary = scoring.Summarize(w.Departments)
		data.Results = scoring.RankPlatformROI(w.Departments, app.catalog.Benchmarks())
	}
	return data
}

// updateAssessment applies one wizard action. Successful actions redirect back to the wizard, failed ones render
// the wizard with the violations.
func (app *application) updateAssessment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	wizard := app.wizard(ctx)
	form := r.PostForm

	var (
		errs     []validation.Violation
		deptForm departmentForm
		err      error
	)
	switch action := form.Get("action"); action {
	case "next":
		if wizard.Step == sessionstate.StepOrganization {
			errs = app.updateOrganization(&wizard, form.Get("organizationName"), form.Get("assessmentDate"))
		}
		if len(errs) == 0 {
			errs = stepViolations(wizard.Next())
		}
	case "back":
		wizard.Back()
	case "complete":
		errs = stepViolations(wizard.Complete())
	case "reset":
		wizard = sessionstate.NewWizard(app.now())
	case "add-department":
		deptForm = departmentForm{
			Name:       form.Get("name"),
			UserCount:  form.Get("userCount"),
			HourlyRate: form.Get("hourlyRate"),
		}
		if errs, err = app.addDepartment(&wizard, deptForm); err != nil {
			app.serverError(w, r, err)
			return
		}
		if len(errs) == 0 {
			deptForm = departmentForm{}
		}
	case "remove-department":
		i, convErr := strconv.Atoi(form.Get("index"))
		if convErr != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		wizard.RemoveDepartment(i)
	case "toggle-compliance":
		wizard.ToggleCompliance(form.Get("value"))
	case "toggle-integration":
		wizard.ToggleIntegration(form.Get("value"))
	case "toggle-pain-point":
		wizard.TogglePainPoint(form.Get("value"))
	default:
		app.logger.LogAttrs(ctx, slog.LevelDebug, "unknown assessment action", slog.String("action", action))
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	app.putWizard(ctx, wizard)
	if len(errs) > 0 {
		app.renderWith(w, r, http.StatusUnprocessableEntity, app.sectionByName("assessment"),
			app.newAssessmentPageData(wizard, errs, deptForm))
		return
	}
	http.Redirect(w, r, "/assessment", http.StatusSeeOther)
}

func (app *application) updateOrganization(wizard *sessionstate.Wizard, name, date string) []validation.Violation {
	wizard.OrganizationName = strings.TrimSpace(name)
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return []validation.Violation{{Field: "assessmentDate", Message: "Assessment date must be a valid date"}}
	}
	wizard.AssessmentDate = date
	return nil
}

func (app *application) addDepartment(wizard *sessionstate.Wizard, form departmentForm) ([]validation.Violation, error) {
	dept := validation.Department{
		Name:       form.Name,
		UserCount:  parseNumber(form.UserCount),
		HourlyRate: parseNumber(form.HourlyRate),
	}
	errs, err := violations(app.validator.Struct(dept))
	if err != nil || len(errs) > 0 {
		return errs, err
	}
	if err = wizard.AddDepartment(dept.Model(), app.catalog.IsDepartment); err != nil {
		return nil, errors.Wrap(err, "add department")
	}
	return nil, nil
}

func stepViolations(err error) []validation.Violation {
	if err == nil {
		return nil
	}
	return []validation.Violation{{Field: "step", Message: sessionstate.ErrStepIncomplete.Error()}}
}
