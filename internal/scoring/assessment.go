package scoring

import (
	"github.com/intinc/platformexplorer/internal/models"
	"sort"
)

const (
	// AssessmentWeeksPerYear is the working year of the department assessment. It intentionally differs from
	// EnterpriseWeeksPerYear; the two models are kept separate.
	AssessmentWeeksPerYear = 50
	// DefaultMonthlyPrice applies to benchmark platforms without a listed price.
	DefaultMonthlyPrice = 20
	threeYears          = 3
)

// CalculatePlatformROI aggregates the savings of one benchmark platform across departments.
func CalculatePlatformROI(departments []models.Department, benchmarks models.Benchmarks, platformID string) models.PlatformROI {
	result := models.PlatformROI{Platform: platformID, PlatformName: platformID}
	monthlyPrice := float64(DefaultMonthlyPrice)
	for _, bp := range benchmarks.Platforms {
		if bp.ID == platformID {
			result.PlatformName = bp.Name
			result.Color = bp.Color
			if bp.MonthlyPrice > 0 {
				monthlyPrice = bp.MonthlyPrice
			}
			break
		}
	}

	for _, dept := range departments {
		hoursPerWeek := benchmarks.WeeklyHoursSaved[dept.Name][platformID]
		users := float64(dept.UserCount)
		annualHoursSaved := hoursPerWeek * AssessmentWeeksPerYear * users
		result.TotalAnnualSavings += annualHoursSaved * dept.HourlyRate
		result.TotalCost += monthlyPrice * monthsPerYear * users
	}

	result.NetAnnualSavings = result.TotalAnnualSavings - result.TotalCost
	if result.TotalCost > 0 {
		result.OneYearROI = result.NetAnnualSavings / result.TotalCost * percent
		result.ThreeYearROI = result.NetAnnualSavings * threeYears / result.TotalCost * percent
	}
	return result
}

// RankPlatformROI computes CalculatePlatformROI for every benchmark platform, sorts the results by one-year ROI
// descending and marks the first one as recommended. Ties keep benchmark order.
func RankPlatformROI(departments []models.Department, benchmarks models.Benchmarks) []models.PlatformROI {
	results := make([]models.PlatformROI, 0, len(benchmarks.Platforms))
	for _, bp := range benchmarks.Platforms {
		results = append(results, CalculatePlatformROI(departments, benchmarks, bp.ID))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OneYearROI > results[j].OneYearROI
	})
	if len(results) > 0 {
		results[0].Recommended = true
	}
	return results
}

// Summarize counts departments and their users.
func Summarize(departments []models.Department) models.AssessmentSummary {
	summary := models.AssessmentSummary{Departments: len(departments)}
	for _, d := range departments {
		summary.TotalUsers += d.UserCount
	}
	return summary
}
