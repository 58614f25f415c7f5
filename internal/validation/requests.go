package validation

import (
	"github.com/intinc/platformexplorer/internal/models"
)

// ROIInputs is the request body of the ROI calculator. Pointers distinguish missing fields from zero values.
type ROIInputs struct {
	Employees              *float64 `json:"employees" validate:"required,whole,min=1,max=1000000"`
	AverageSalary          *float64 `json:"averageSalary" validate:"required,min=1000,max=10000000"`
	AdoptionPercentage     *float64 `json:"adoptionPercentage" validate:"required,min=1,max=100"`
	WeeklyProductivityGain *float64 `json:"weeklyProductivityGain" validate:"required,min=0.1,max=40"`
	AnnualPlatformCost     *float64 `json:"annualPlatformCost" validate:"required,min=0,max=100000000"`
	TrainingCost           *float64 `json:"trainingCost" validate:"required,min=0,max=100000000"`
}

// NewROIInputs wraps m for validation.
func NewROIInputs(m models.ROIInputs) ROIInputs {
	employees := float64(m.Employees)
	return ROIInputs{
		Employees:              &employees,
		AverageSalary:          &m.AverageSalary,
		AdoptionPercentage:     &m.AdoptionPercentage,
		WeeklyProductivityGain: &m.WeeklyProductivityGain,
		AnnualPlatformCost:     &m.AnnualPlatformCost,
		TrainingCost:           &m.TrainingCost,
	}
}

// Model converts validated inputs. It must only be called after a successful validation.
func (in ROIInputs) Model() models.ROIInputs {
	return models.ROIInputs{
		Employees:              int(*in.Employees),
		AverageSalary:          *in.AverageSalary,
		AdoptionPercentage:     *in.AdoptionPercentage,
		WeeklyProductivityGain: *in.WeeklyProductivityGain,
		AnnualPlatformCost:     *in.AnnualPlatformCost,
		TrainingCost:           *in.TrainingCost,
	}
}

// Compare is the request body of the platform comparison.
type Compare struct {
	IDs []string `json:"ids" validate:"required,min=1,max=4,dive,min=1"`
}

// PRD is the request body of the PRD generator.
type PRD struct {
	FeatureIdea string `json:"featureIdea" validate:"required,trimmedmin=10"`
}

// Department is one department of an assessment request.
type Department struct {
	Name       string   `json:"name" validate:"required,department"`
	UserCount  *float64 `json:"userCount" validate:"required,whole,min=1,max=1000000"`
	HourlyRate *float64 `json:"hourlyRate" validate:"required,min=0,max=10000"`
}

// Model converts a validated department.
func (d Department) Model() models.Department {
	return models.Department{Name: d.Name, UserCount: int(*d.UserCount), HourlyRate: *d.HourlyRate}
}

// Assessment is the request body of the department assessment.
type Assessment struct {
	Departments []Department `json:"departments" validate:"required,min=1,dive"`
}

// Models converts validated departments.
func (a Assessment) Models() []models.Department {
	out := make([]models.Department, len(a.Departments))
	for i, d := range a.Departments {
		out[i] = d.Model()
	}
	return out
}
