// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/sum-match/internal/solver"
)

// FindCombination finds the combination selecting exactly the given
// original indices. Returns a pointer to the combination if found, nil
// otherwise.
func FindCombination(result *solver.Result, indices []int) *solver.Combination {
	for i := range result.Combinations {
		if equalInts(result.Combinations[i].Indices, indices) {
			return &result.Combinations[i]
		}
	}
	return nil
}

// IndexSets extracts the index sets of a result for set comparisons.
func IndexSets(result *solver.Result) [][]int {
	sets := make([][]int, len(result.Combinations))
	for i, combo := range result.Combinations {
		sets[i] = combo.Indices
	}
	return sets
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
