package solver

import "errors"

// Error kinds reported by the pre-filter and the engines. All of these are
// detected synchronously; a search that starts running only ever ends in a
// result or a terminal engine fault.
var (
	// ErrEmptyInput indicates the input list contained no values.
	ErrEmptyInput = errors.New("solver: no input values")

	// ErrInvalidPrecision indicates a value, target, or tolerance carried
	// more than two decimal places.
	ErrInvalidPrecision = errors.New("solver: value exceeds two decimal places")

	// ErrSignMismatch indicates every input shares one sign strictly
	// opposite to the sign of a nonzero target.
	ErrSignMismatch = errors.New("solver: input signs cannot reach target")

	// ErrTargetOutOfRange indicates the target lies outside the achievable
	// sum range of the inputs.
	ErrTargetOutOfRange = errors.New("solver: target outside achievable sum range")

	// ErrTableTooLarge indicates the dynamic-programming table would
	// exceed the configured cell ceiling.
	ErrTableTooLarge = errors.New("solver: dynamic-programming table exceeds memory limit")

	// ErrNegativeTolerance indicates a tolerance below zero.
	ErrNegativeTolerance = errors.New("solver: tolerance must be non-negative")
)
