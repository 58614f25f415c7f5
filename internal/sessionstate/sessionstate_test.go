package sessionstate_test

import (
	"bytes"
	"encoding/gob"
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/sessionstate"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
	"time"
)

func TestSelection(t *testing.T) {
	var s sessionstate.Selection

	for _, id := range []string{"a", "b", "c", "d"} {
		selected, err := s.Toggle(id)
		require.NoError(t, err)
		require.True(t, selected)
	}
	require.True(t, s.Full())

	_, err := s.Toggle("e")
	require.ErrorIs(t, err, sessionstate.ErrSelectionFull)
	require.Equal(t, []string{"a", "b", "c", "d"}, s.IDs)

	selected, err := s.Toggle("b")
	require.NoError(t, err)
	require.False(t, selected)
	require.Equal(t, []string{"a", "c", "d"}, s.IDs)

	selected, err = s.Toggle("b")
	require.NoError(t, err)
	require.True(t, selected)
	require.Equal(t, []string{"a", "c", "d", "b"}, s.IDs)

	s.Clear()
	require.Zero(t, s.Len())
}

func isDepartment(name string) bool {
	return slices.Contains([]string{"Sales", "HR"}, name)
}

func TestWizardGating(t *testing.T) {
	w := sessionstate.NewWizard(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))
	require.Equal(t, sessionstate.StepOrganization, w.Step)
	require.Equal(t, "2024-03-05", w.AssessmentDate)

	w.OrganizationName = "   "
	require.ErrorIs(t, w.Next(), sessionstate.ErrStepIncomplete)
	require.Equal(t, sessionstate.StepOrganization, w.Step)

	w.OrganizationName = "Acme"
	require.NoError(t, w.Next())
	require.Equal(t, sessionstate.StepDepartments, w.Step)
	require.ErrorIs(t, w.Next(), sessionstate.ErrStepIncomplete)
	require.ErrorIs(t, w.Complete(), sessionstate.ErrStepIncomplete)

	require.NoError(t, w.AddDepartment(models.Department{Name: "Sales", UserCount: 10, HourlyRate: 50}, isDepartment))
	for step := sessionstate.StepCompliance; step <= sessionstate.TotalSteps; step++ {
		require.NoError(t, w.Next())
		require.Equal(t, step, w.Step)
	}
	require.NoError(t, w.Next())
	require.Equal(t, sessionstate.TotalSteps, w.Step)

	require.NoError(t, w.Complete())
	require.True(t, w.Completed)

	w.Back()
	require.False(t, w.Completed)
	require.Equal(t, sessionstate.StepIntegrations, w.Step)

	first := sessionstate.NewWizard(time.Now())
	first.Back()
	require.Equal(t, sessionstate.StepOrganization, first.Step)
}

func TestWizardDepartments(t *testing.T) {
	var w sessionstate.Wizard

	err := w.AddDepartment(models.Department{Name: "Astrology", UserCount: 1}, isDepartment)
	require.ErrorIs(t, err, sessionstate.ErrUnknownDepartment)
	require.Empty(t, w.Departments)

	require.NoError(t, w.AddDepartment(models.Department{Name: "Sales", UserCount: 10, HourlyRate: 50}, isDepartment))
	require.NoError(t, w.AddDepartment(models.Department{Name: "HR", UserCount: 4, HourlyRate: 40}, isDepartment))
	require.NoError(t, w.AddDepartment(models.Department{Name: "Sales", UserCount: 2, HourlyRate: 60}, isDepartment))

	w.RemoveDepartment(5)
	w.RemoveDepartment(-1)
	require.Len(t, w.Departments, 3)

	w.RemoveDepartment(1)
	require.Equal(t, []models.Department{
		{Name: "Sales", UserCount: 10, HourlyRate: 50},
		{Name: "Sales", UserCount: 2, HourlyRate: 60},
	}, w.Departments)
}

func TestWizardToggles(t *testing.T) {
	var w sessionstate.Wizard
	w.ToggleCompliance("SOC 2")
	w.ToggleCompliance("HIPAA")
	w.ToggleCompliance("SOC 2")
	w.ToggleIntegration("Slack")
	w.TogglePainPoint("Manual data entry")
	require.Equal(t, []string{"HIPAA"}, w.Compliance)
	require.Equal(t, []string{"Slack"}, w.Integrations)
	require.Equal(t, []string{"Manual data entry"}, w.PainPoints)
}

func TestChecklist(t *testing.T) {
	var c sessionstate.Checklist
	key := sessionstate.ChecklistKey(1, "Create admin accounts")
	require.Equal(t, "1:Create admin accounts", key)

	require.True(t, c.Toggle(key))
	require.True(t, c.Done(key))
	require.True(t, c.Toggle(sessionstate.ChecklistKey(2, "Pilot")))
	require.Equal(t, 12, c.Progress(16))
	require.False(t, c.Toggle(key))
	require.False(t, c.Done(key))
	require.Equal(t, 6, c.Progress(16))
	require.Zero(t, c.Progress(0))
}

func TestSessionEncoding(t *testing.T) {
	// Session stores encode values as interfaces, so the types must be registered.
	w := sessionstate.NewWizard(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC))
	w.OrganizationName = "Acme"
	w.Departments = []models.Department{{Name: "Sales", UserCount: 10, HourlyRate: 50}}
	values := map[string]any{
		"selection": sessionstate.Selection{IDs: []string{"a"}},
		"wizard":    w,
		"checklist": sessionstate.Checklist{Completed: []string{"1:x"}},
	}

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(values))
	var decoded map[string]any
	require.NoError(t, gob.NewDecoder(&buf).Decode(&decoded))
	require.Equal(t, values, decoded)
}
