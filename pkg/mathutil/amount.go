// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/sum-match/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent a real amount.
// Used for making logical comparisons and for display.
func Round(val float64) float64 {
	return math.Round(val*constants.ScaleFactor) / constants.ScaleFactor
}

// Scale converts a two-decimal amount to its exact integer representation
// (cents). The caller is responsible for validating precision first.
func Scale(val float64) int64 {
	return int64(math.Round(val * constants.ScaleFactor))
}

// Unscale converts an integer amount in cents back to a decimal value.
func Unscale(scaled int64) float64 {
	return float64(scaled) / constants.ScaleFactor
}

// HasTwoDecimalPrecision reports whether a value carries no more than two
// decimal places, within a small epsilon to absorb float64 noise.
func HasTwoDecimalPrecision(val float64) bool {
	scaled := val * constants.ScaleFactor
	return math.Abs(scaled-math.Round(scaled)) <= constants.PrecisionEpsilon
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// AbsInt64 returns the absolute value of an int64.
func AbsInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
