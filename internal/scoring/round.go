package scoring

import "math"

// round rounds half up, matching the rounding used in the published ROI figures.
func round(x float64) float64 {
	return math.Floor(x + 0.5) //nolint:mnd // half
}

func roundTo(x float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals)) //nolint:mnd // decimal base
	return round(x*factor) / factor
}
