package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/sum-match/pkg/constants"
	"github.com/iwvelando/sum-match/pkg/mathutil"
)

// ValidateInputCount checks that a data set size lies within the
// application's accepted range.
func ValidateInputCount(count int) error {
	if count < constants.MinInputCount || count > constants.MaxInputCount {
		return fmt.Errorf("expected between %d and %d values, got %d",
			constants.MinInputCount, constants.MaxInputCount, count)
	}
	return nil
}

// ValidateValues checks that every value carries at most two decimal
// places.
func ValidateValues(values []float64) error {
	for i, v := range values {
		if !mathutil.HasTwoDecimalPrecision(v) {
			return fmt.Errorf("value %v at position %d exceeds two decimal places", v, i)
		}
	}
	return nil
}

// SearchWarnings reports non-fatal oddities in search parameters.
func SearchWarnings(target, tolerance float64) []string {
	var warnings []string
	if tolerance > 0 && target != 0 && mathutil.WithinTolerance(target, 0, tolerance) {
		warnings = append(warnings, fmt.Sprintf(
			"tolerance %.2f is at least as large as the target magnitude %.2f - most subsets near zero will match", tolerance, math.Abs(target)))
	}
	if target == 0 {
		warnings = append(warnings, "target is zero - consider whether the empty subset should count as a solution (allowEmptySubset)")
	}
	return warnings
}
