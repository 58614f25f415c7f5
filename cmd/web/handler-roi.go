package main

import (
	"github.com/intinc/platformexplorer/internal/models"
	"github.com/intinc/platformexplorer/internal/scoring"
	"github.com/intinc/platformexplorer/internal/validation"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// roiForm holds the calculator inputs as entered so that invalid values are shown back unchanged.
type roiForm struct {
	Employees              string
	AverageSalary          string
	AdoptionPercentage     string
	WeeklyProductivityGain string
	AnnualPlatformCost     string
	TrainingCost           string
}

type roiPageData struct {
	Form         roiForm
	Errors       []validation.Violation
	Results      *models.ROIResults
	WeeksPerYear int
	HoursPerWeek int
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func newROIForm(in models.ROIInputs) roiForm {
	return roiForm{
		Employees:              strconv.Itoa(in.Employees),
		AverageSalary:          formatFloat(in.AverageSalary),
		AdoptionPercentage:     formatFloat(in.AdoptionPercentage),
		WeeklyProductivityGain: formatFloat(in.WeeklyProductivityGain),
		AnnualPlatformCost:     formatFloat(in.AnnualPlatformCost),
		TrainingCost:           formatFloat(in.TrainingCost),
	}
}

func roiFormFromQuery(query url.Values) roiForm {
	return roiForm{
		Employees:              query.Get("employees"),
		AverageSalary:          query.Get("averageSalary"),
		AdoptionPercentage:     query.Get("adoptionPercentage"),
		WeeklyProductivityGain: query.Get("weeklyProductivityGain"),
		AnnualPlatformCost:     query.Get("annualPlatformCost"),
		TrainingCost:           query.Get("trainingCost"),
	}
}

// parseNumber returns nil for empty or malformed input so that validation reports the field as required.
func parseNumber(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func (f roiForm) inputs() validation.ROIInputs {
	return validation.ROIInputs{
		Employees:              parseNumber(f.Employees),
		AverageSalary:          parseNumber(f.AverageSalary),
		AdoptionPercentage:     parseNumber(f.AdoptionPercentage),
		WeeklyProductivityGain: parseNumber(f.WeeklyProductivityGain),
		AnnualPlatformCost:     parseNumber(f.AnnualPlatformCost),
		TrainingCost:           parseNumber(f.TrainingCost),
	}
}

// roiData recalculates on every change of the inputs. Without a query the default inputs are shown.
func (app *application) roiData(r *http.Request) (any, error) {
	data := roiPageData{
		Form:         newROIForm(models.DefaultROIInputs),
		WeeksPerYear: scoring.EnterpriseWeeksPerYear,
		HoursPerWeek: scoring.HoursPerWeek,
	}
	if query := r.URL.Query(); len(query) > 0 {
		data.Form = roiFormFromQuery(query)
	}

	inputs := data.Form.inputs()
	var err error
	if data.Errors, err = violations(app.validator.Struct(inputs)); err != nil {
		return nil, err
	}
	if len(data.Errors) == 0 {
		results := scoring.CalculateROI(inputs.Model())
		data.Results = &results
	}
	return data, nil
}
