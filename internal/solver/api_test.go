package solver_test

import (
	"context"
	"testing"

	"github.com/iwvelando/sum-match/internal/solver"
	"github.com/iwvelando/sum-match/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearchAPI drives the solver the way callers do: original ordering
// preserved inside combinations, selection expressed as original indices.
func TestSearchAPI(t *testing.T) {
	values := []float64{10.00, 0.50, 4.75, 5.25, 9.50, 3.00, 7.25, 2.25, 1.50, 6.00}

	result, err := solver.Search(context.Background(), values, 10.00, 0.00, solver.Options{Mode: solver.FindAll})
	require.NoError(t, err)
	require.NotEmpty(t, result.Combinations)

	// 4.75+5.25 and 10.00 alone must both be present.
	direct := testutil.FindCombination(result, []int{0})
	require.NotNil(t, direct)
	assert.Equal(t, []float64{10.00}, direct.Values)

	pair := testutil.FindCombination(result, []int{2, 3})
	require.NotNil(t, pair)
	assert.Equal(t, []float64{4.75, 5.25}, pair.Values)
	assert.Equal(t, 10.00, pair.Sum)

	for _, set := range testutil.IndexSets(result) {
		for i := 1; i < len(set); i++ {
			assert.Less(t, set[i-1], set[i], "indices must be ascending")
		}
	}
}

func TestSearchAPIRespectsOverride(t *testing.T) {
	values := []float64{10.00, 0.50, 4.75, 5.25, 9.50, 3.00, 7.25, 2.25, 1.50, 6.00}

	result, err := solver.Search(context.Background(), values, 10.00, 0.00, solver.Options{
		Mode:      solver.FindAll,
		Algorithm: solver.AlgorithmBranchBound,
	})
	require.NoError(t, err)
	assert.Equal(t, solver.AlgorithmBranchBound, result.Algorithm)
	assert.NotNil(t, testutil.FindCombination(result, []int{2, 3}))
}
