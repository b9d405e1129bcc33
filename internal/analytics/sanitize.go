package analytics

import "math"

// Finite replaces NaN and Inf with 0. Every numeric leaf of the dashboard
// response passes through here before serialization.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(Finite(f)*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(Finite(f)*100) / 100
}
