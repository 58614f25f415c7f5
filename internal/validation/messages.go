package validation

// messages maps "<field path>.<tag>" to the message reported to users. Slice indices are written as [].
var messages = map[string]string{
	"employees.required":              "Employee count is required",
	"employees.whole":                 "Employee count must be a whole number",
	"employees.min":                   "At least 1 employee required",
	"employees.max":                   "Employee count exceeds maximum",
	"averageSalary.required":          "Average salary is required",
	"averageSalary.min":               "Average salary must be at least $1,000",
	"averageSalary.max":               "Average salary exceeds maximum",
	"adoptionPercentage.required":     "Adoption percentage is required",
	"adoptionPercentage.min":          "Adoption percentage must be at least 1%",
	"adoptionPercentage.max":          "Adoption percentage cannot exceed 100%",
	"weeklyProductivityGain.required": "Weekly productivity gain is required",
	"weeklyProductivityGain.min":      "Weekly productivity gain must be at least 0.1 hours",
	"weeklyProductivityGain.max":      "Weekly productivity gain cannot exceed 40 hours",
	"annualPlatformCost.required":     "Platform cost is required",
	"annualPlatformCost.min":          "Platform cost cannot be negative",
	"annualPlatformCost.max":          "Platform cost exceeds maximum",
	"trainingCost.required":           "Training cost is required",
	"trainingCost.min":                "Training cost cannot be negative",
	"trainingCost.max":                "Training cost exceeds maximum",

	"ids.required": "At least 1 platform ID required",
	"ids.min":      "At least 1 platform ID required",
	"ids.max":      "Maximum 4 platforms for comparison",
	"ids[].min":    "Platform ID cannot be empty",

	"featureIdea.required":   "Feature idea must be at least 10 characters",
	"featureIdea.trimmedmin": "Feature idea must be at least 10 characters",

	"departments.required":              "At least 1 department required",
	"departments.min":                   "At least 1 department required",
	"departments[].name.required":       "Department name is required",
	"departments[].name.department":     "Unknown department",
	"departments[].userCount.required":  "User count is required",
	"departments[].userCount.whole":     "User count must be a whole number",
	"departments[].userCount.min":       "At least 1 user required",
	"departments[].userCount.max":       "User count exceeds maximum",
	"departments[].hourlyRate.required": "Hourly rate is required",
	"departments[].hourlyRate.min":      "Hourly rate cannot be negative",
	"departments[].hourlyRate.max":      "Hourly rate exceeds maximum",
}
