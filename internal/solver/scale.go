package solver

import (
	"fmt"

	"github.com/iwvelando/sum-match/pkg/mathutil"
)

// scaledItem pairs an exact integer amount (cents) with its position in
// the caller's input. The solver never reorders or mutates the caller's
// slice; every engine works against a sorted copy of these items.
type scaledItem struct {
	index  int
	scaled int64
}

// scaleInputs converts decimal inputs into exact integer amounts,
// retaining each value's original position.
func scaleInputs(values []float64) ([]scaledItem, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	items := make([]scaledItem, len(values))
	for i, v := range values {
		if !mathutil.HasTwoDecimalPrecision(v) {
			return nil, fmt.Errorf("%w: value %v at index %d", ErrInvalidPrecision, v, i)
		}
		items[i] = scaledItem{index: i, scaled: mathutil.Scale(v)}
	}
	return items, nil
}

// prefilter runs the cheap rejection tests before any engine starts.
// The sign check precedes the range check so that all-negative inputs
// against a positive target report as a sign mismatch rather than the
// less specific out-of-range error.
func prefilter(items []scaledItem, target, tolerance int64) error {
	var sumPos, sumNeg int64
	var pos, neg int
	for _, it := range items {
		switch {
		case it.scaled > 0:
			sumPos += it.scaled
			pos++
		case it.scaled < 0:
			sumNeg += it.scaled
			neg++
		}
	}
	if target > tolerance && pos == 0 && neg > 0 {
		return fmt.Errorf("%w: target %d is positive but all inputs are negative", ErrSignMismatch, target)
	}
	if target < -tolerance && neg == 0 && pos > 0 {
		return fmt.Errorf("%w: target %d is negative but all inputs are positive", ErrSignMismatch, target)
	}
	if target-tolerance > sumPos || target+tolerance < sumNeg {
		return fmt.Errorf("%w: target %d outside [%d, %d]", ErrTargetOutOfRange, target, sumNeg, sumPos)
	}
	return nil
}
