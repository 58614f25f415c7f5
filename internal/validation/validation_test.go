package validation_test

import (
	"github.com/intinc/platformexplorer/internal/errors"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/validation"
	"github.com/stretchr/testify/require"
	"testing"
)

func ptr(f float64) *float64 {
	return &f
}

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.New([]string{"Sales", "HR"})
	require.NoError(t, err)
	return v
}

func violations(t *testing.T, err error) []validation.Violation {
	t.Helper()
	require.ErrorIs(t, err, validation.ErrInvalidInput)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	return verr.Violations
}

func TestROIInputs(t *testing.T) {
	v := newValidator(t)

	valid := func() validation.ROIInputs {
		return validation.NewROIInputs(models.DefaultROIInputs)
	}

	tests := []struct {
		name   string
		mutate func(in *validation.ROIInputs)
		want   []validation.Violation
	}{
		{name: "defaults", mutate: func(*validation.ROIInputs) {}},
		{
			name:   "zero employees",
			mutate: func(in *validation.ROIInputs) { in.Employees = ptr(0) },
			want:   []validation.Violation{{Field: "employees", Message: "At least 1 employee required"}},
		},
		{
			name:   "fractional employees",
			mutate: func(in *validation.ROIInputs) { in.Employees = ptr(1.5) },
			want:   []validation.Violation{{Field: "employees", Message: "Employee count must be a whole number"}},
		},
		{
			name:   "missing salary",
			mutate: func(in *validation.ROIInputs) { in.AverageSalary = nil },
			want:   []validation.Violation{{Field: "averageSalary", Message: "Average salary is required"}},
		},
		{
			name: "several violations in field order",
			mutate: func(in *validation.ROIInputs) {
				in.AdoptionPercentage = ptr(101)
				in.WeeklyProductivityGain = ptr(0.05)
				in.TrainingCost = ptr(-1)
			},
			want: []validation.Violation{
				{Field: "adoptionPercentage", Message: "Adoption percentage cannot exceed 100%"},
				{Field: "weeklyProductivityGain", Message: "Weekly productivity gain must be at least 0.1 hours"},
				{Field: "trainingCost", Message: "Training cost cannot be negative"},
			},
		},
		{
			name:   "zero costs are allowed",
			mutate: func(in *validation.ROIInputs) { in.AnnualPlatformCost, in.TrainingCost = ptr(0), ptr(0) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			err := v.Struct(in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.want, violations(t, err))
		})
	}
}

func TestROIInputsModel(t *testing.T) {
	require.Equal(t, models.DefaultROIInputs, validation.NewROIInputs(models.DefaultROIInputs).Model())
}

func TestCompare(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		ids  []string
		want []validation.Violation
	}{
		{name: "one", ids: []string{"claude-sonnet"}},
		{name: "four", ids: []string{"a", "b", "c", "d"}},
		{name: "missing", ids: nil, want: []validation.Violation{{Field: "ids", Message: "At least 1 platform ID required"}}},
		{name: "empty", ids: []string{}, want: []validation.Violation{{Field: "ids", Message: "At least 1 platform ID required"}}},
		{
			name: "five",
			ids:  []string{"a", "b", "c", "d", "e"},
			want: []validation.Violation{{Field: "ids", Message: "Maximum 4 platforms for comparison"}},
		},
		{
			name: "blank id",
			ids:  []string{"a", ""},
			want: []validation.Violation{{Field: "ids[1]", Message: "Platform ID cannot be empty"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(validation.Compare{IDs: tt.ids})
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.want, violations(t, err))
		})
	}
}

func TestPRD(t *testing.T) {
	v := newValidator(t)

	require.NoError(t, v.Struct(validation.PRD{FeatureIdea: "Add dark mode to settings"}))

	for _, idea := range []string{"", "short", "   dark mode    "} {
		err := v.Struct(validation.PRD{FeatureIdea: idea})
		require.Equal(t, []validation.Violation{
			{Field: "featureIdea", Message: "Feature idea must be at least 10 characters"},
		}, violations(t, err), idea)
	}
}

func TestAssessment(t *testing.T) {
	v := newValidator(t)

	valid := validation.Assessment{Departments: []validation.Department{
		{Name: "Sales", UserCount: ptr(10), HourlyRate: ptr(50)},
		{Name: "HR", UserCount: ptr(1), HourlyRate: ptr(0)},
	}}
	require.NoError(t, v.Struct(valid))
	require.Equal(t, []models.Department{
		{Name: "Sales", UserCount: 10, HourlyRate: 50},
		{Name: "HR", UserCount: 1, HourlyRate: 0},
	}, valid.Models())

	err := v.Struct(validation.Assessment{})
	require.Equal(t, []validation.Violation{{Field: "departments", Message: "At least 1 department required"}},
		violations(t, err))

	err = v.Struct(validation.Assessment{Departments: []validation.Department{
		{Name: "Sales", UserCount: ptr(10), HourlyRate: ptr(50)},
		{Name: "Astrology", UserCount: ptr(0), HourlyRate: ptr(-5)},
	}})
	require.Equal(t, []validation.Violation{
		{Field: "departments[1].name", Message: "Unknown department"},
		{Field: "departments[1].userCount", Message: "At least 1 user required"},
		{Field: "departments[1].hourlyRate", Message: "Hourly rate cannot be negative"},
	}, violations(t, err))
}

func TestErrorMessage(t *testing.T) {
	err := &validation.Error{Violations: []validation.Violation{
		{Field: "a", Message: "first"},
		{Field: "b", Message: "second"},
	}}
	require.Equal(t, "first; second", err.Error())
}
