package models

// ROIInputs are the organization-wide what-if inputs of the ROI calculator.
type ROIInputs struct {
	Employees              int     `json:"employees" yaml:"employees"`
	AverageSalary          float64 `json:"averageSalary" yaml:"averageSalary"`
	AdoptionPercentage     float64 `json:"adoptionPercentage" yaml:"adoptionPercentage"`
	WeeklyProductivityGain float64 `json:"weeklyProductivityGain" yaml:"weeklyProductivityGain"`
	AnnualPlatformCost     float64 `json:"annualPlatformCost" yaml:"annualPlatformCost"`
	TrainingCost           float64 `json:"trainingCost" yaml:"trainingCost"`
}

// DefaultROIInputs are the values the calculator starts from.
var DefaultROIInputs = ROIInputs{
	Employees:              500,
	AverageSalary:          75000,
	AdoptionPercentage:     60,
	WeeklyProductivityGain: 7,
	AnnualPlatformCost:     12000,
	TrainingCost:           5000,
}

// ROIResults are derived from ROIInputs. Monetary values and the percentage are whole numbers, the payback
// period has one decimal.
type ROIResults struct {
	AnnualProductivityValue float64 `json:"annualProductivityValue"`
	AnnualTotalCost         float64 `json:"annualTotalCost"`
	NetBenefit              float64 `json:"netBenefit"`
	ROIPercentage           float64 `json:"roiPercentage"`
	PaybackPeriodMonths     float64 `json:"paybackPeriodMonths"`
}

// Department is one row of the assessment wizard.
type Department struct {
	Name       string  `json:"name" yaml:"name"`
	UserCount  int     `json:"userCount" yaml:"userCount"`
	HourlyRate float64 `json:"hourlyRate" yaml:"hourlyRate"`
}

// BenchmarkPlatform is one of the platforms the department assessment projects savings for.
type BenchmarkPlatform struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Color        string  `json:"color" yaml:"color"`
	MonthlyPrice float64 `json:"monthlyPrice" yaml:"monthlyPrice"`
}

// Benchmarks holds the fixed benchmark table of the department assessment.
type Benchmarks struct {
	Platforms []BenchmarkPlatform `json:"platforms"`
	// WeeklyHoursSaved maps department name to benchmark platform id to weekly hours saved per user.
	WeeklyHoursSaved map[string]map[string]float64 `json:"weeklyHoursSaved"`
}

// PlatformROI aggregates the savings projection of one benchmark platform across all departments.
type PlatformROI struct {
	Platform           string  `json:"platform"`
	PlatformName       string  `json:"platformName"`
	Color              string  `json:"color"`
	TotalAnnualSavings float64 `json:"totalAnnualSavings"`
	TotalCost          float64 `json:"totalCost"`
	NetAnnualSavings   float64 `json:"netAnnualSavings"`
	OneYearROI         float64 `json:"oneYearRoi"`
	ThreeYearROI       float64 `json:"threeYearRoi"`
	Recommended        bool    `json:"recommended"`
}

// AssessmentSummary describes the departments entered in the assessment.
type AssessmentSummary struct {
	Departments int `json:"departments"`
	TotalUsers  int `json:"totalUsers"`
}
