package scoring

import (
	"github.com/intinc/platformexplorer/internal/models"
)

const (
	// EnterpriseWeeksPerYear is the working year of the enterprise ROI calculator.
	EnterpriseWeeksPerYear = 48
	// HoursPerWeek converts an annual salary to an hourly rate.
	HoursPerWeek  = 40
	monthsPerYear = 12
	percent       = 100
)

// CalculateROI projects the annual return of rolling out a platform to a share of the workforce.
//
// Ratios whose denominator is zero are reported as zero.
func CalculateROI(in models.ROIInputs) models.ROIResults {
	adoptedEmployees := round(float64(in.Employees) * in.AdoptionPercentage / percent)
	hourlyRate := in.AverageSalary / (EnterpriseWeeksPerYear * HoursPerWeek)

	productivityValue := adoptedEmployees * in.WeeklyProductivityGain * hourlyRate * EnterpriseWeeksPerYear
	totalCost := in.AnnualPlatformCost + in.TrainingCost
	netBenefit := productivityValue - totalCost

	var roiPercentage, paybackMonths float64
	if totalCost > 0 {
		roiPercentage = netBenefit / totalCost * percent
	}
	if productivityValue > 0 {
		paybackMonths = totalCost / productivityValue * monthsPerYear
	}

	return models.ROIResults{
		AnnualProductivityValue: round(productivityValue),
		AnnualTotalCost:         round(totalCost),
		NetBenefit:              round(netBenefit),
		ROIPercentage:           round(roiPercentage),
		PaybackPeriodMonths:     roundTo(paybackMonths, 1),
	}
}
