package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleInputs(t *testing.T) {
	items, err := scaleInputs([]float64{1.50, -2.25, 0, 0.01})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, int64(150), items[0].scaled)
	assert.Equal(t, int64(-225), items[1].scaled)
	assert.Equal(t, int64(0), items[2].scaled)
	assert.Equal(t, int64(1), items[3].scaled)
	for i, it := range items {
		assert.Equal(t, i, it.index)
	}
}

func TestScaleInputsEmpty(t *testing.T) {
	_, err := scaleInputs(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestScaleInputsPrecision(t *testing.T) {
	_, err := scaleInputs([]float64{1.25, 3.141})
	assert.ErrorIs(t, err, ErrInvalidPrecision)
}

func TestPrefilter(t *testing.T) {
	tests := []struct {
		name      string
		values    []int64
		target    int64
		tolerance int64
		wantErr   error
	}{
		{
			name:   "reachable target",
			values: []int64{300, 700}, target: 700,
		},
		{
			name:   "target above achievable range",
			values: []int64{300, 700}, target: 10000,
			wantErr: ErrTargetOutOfRange,
		},
		{
			name:   "target below achievable range",
			values: []int64{300, 700}, target: -100,
			wantErr: ErrTargetOutOfRange,
		},
		{
			name:   "all negative values, positive target",
			values: []int64{-200, -300}, target: 500,
			wantErr: ErrSignMismatch,
		},
		{
			name:   "all positive values, negative target",
			values: []int64{200, 300}, target: -500,
			wantErr: ErrSignMismatch,
		},
		{
			name:   "near-zero target is a normal target",
			values: []int64{-200, 300}, target: 1, tolerance: 5,
		},
		{
			name:   "mixed signs may cancel",
			values: []int64{-200, -300, 400}, target: -100,
		},
		{
			name:   "tolerance widens reach",
			values: []int64{300, 700}, target: 1002, tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]scaledItem, len(tt.values))
			for i, v := range tt.values {
				items[i] = scaledItem{index: i, scaled: v}
			}
			err := prefilter(items, tt.target, tt.tolerance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSortPolicies(t *testing.T) {
	items := []scaledItem{{0, 100}, {1, -500}, {2, 25}, {3, 300}}

	byMagnitude := append([]scaledItem(nil), items...)
	sortByMagnitude(byMagnitude)
	assert.Equal(t, []int64{-500, 300, 100, 25}, scaledValues(byMagnitude))
	assert.Equal(t, []int{1, 3, 0, 2}, itemIndexes(byMagnitude))

	byValue := append([]scaledItem(nil), items...)
	sortByValue(byValue)
	assert.Equal(t, []int64{-500, 25, 100, 300}, scaledValues(byValue))
	assert.Equal(t, []int{1, 2, 0, 3}, itemIndexes(byValue))
}

func scaledValues(items []scaledItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.scaled
	}
	return out
}

func itemIndexes(items []scaledItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.index
	}
	return out
}
