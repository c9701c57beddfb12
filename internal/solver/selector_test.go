package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorSearch(n int, maxCells int64) *search {
	items := make([]scaledItem, n)
	for i := range items {
		items[i] = scaledItem{index: i, scaled: 100}
	}
	return &search{items: items, target: 500, maxCells: maxCells}
}

func TestSelectionTable(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		mode     Mode
		maxCells int64
		want     Algorithm
	}{
		{name: "small input", n: 10, mode: FindAll, maxCells: 1 << 27, want: AlgorithmBitEnum},
		{name: "bit enum upper bound", n: 25, mode: FindFirst, maxCells: 1 << 27, want: AlgorithmBitEnum},
		{name: "medium input", n: 26, mode: FindAll, maxCells: 1 << 27, want: AlgorithmMeetMiddle},
		{name: "meet middle upper bound", n: 40, mode: FindAll, maxCells: 1 << 27, want: AlgorithmMeetMiddle},
		{name: "large find first", n: 41, mode: FindFirst, maxCells: 1 << 27, want: AlgorithmBranchBound},
		{name: "large find all", n: 41, mode: FindAll, maxCells: 1 << 27, want: AlgorithmDP},
		{name: "large find all with tiny table limit", n: 41, mode: FindAll, maxCells: 100, want: AlgorithmBranchBound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := selectorSearch(tt.n, tt.maxCells)
			eng, err := selectEngine(AlgorithmAuto, tt.n, tt.mode, s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eng.name)
		})
	}
}

func TestSelectorOverride(t *testing.T) {
	s := selectorSearch(10, 1<<27)

	// An override bypasses the table even when it contradicts it.
	eng, err := selectEngine(AlgorithmBranchBound, 10, FindAll, s)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmBranchBound, eng.name)

	_, err = selectEngine(Algorithm("quantum"), 10, FindAll, s)
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: FindFirst},
		{input: "first", want: FindFirst},
		{input: "FindAll", want: FindAll},
		{input: "all", want: FindAll},
		{input: "everything", wantErr: true},
	}
	for _, tt := range tests {
		mode, err := ParseMode(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, mode, "input %q", tt.input)
	}
}

func TestParseAlgorithm(t *testing.T) {
	algorithm, err := ParseAlgorithm("Meet-Middle")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmMeetMiddle, algorithm)

	algorithm, err = ParseAlgorithm("")
	require.NoError(t, err)
	assert.Equal(t, AlgorithmAuto, algorithm)

	_, err = ParseAlgorithm("bogosort")
	assert.Error(t, err)
}
