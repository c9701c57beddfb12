package solver

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Mode selects how much of the solution space a search explores.
type Mode int

const (
	// FindFirst stops at the first satisfying subset.
	FindFirst Mode = iota

	// FindAll exhaustively collects every satisfying subset.
	FindAll
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case FindFirst:
		return "first"
	case FindAll:
		return "all"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts a config or CLI string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first", "findfirst":
		return FindFirst, nil
	case "all", "findall":
		return FindAll, nil
	}
	return FindFirst, fmt.Errorf("expected mode of first or all, got %s", s)
}

// Algorithm names a search strategy. AlgorithmAuto defers to the
// selection table; any other value forces a specific engine.
type Algorithm string

const (
	AlgorithmAuto        Algorithm = "auto"
	AlgorithmBitEnum     Algorithm = "bit-enum"
	AlgorithmMeetMiddle  Algorithm = "meet-middle"
	AlgorithmDP          Algorithm = "dp"
	AlgorithmBranchBound Algorithm = "branch-bound"
)

// ParseAlgorithm converts a config or CLI string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return AlgorithmAuto, nil
	case AlgorithmAuto, AlgorithmBitEnum, AlgorithmMeetMiddle, AlgorithmDP, AlgorithmBranchBound:
		return Algorithm(strings.ToLower(strings.TrimSpace(s))), nil
	}
	return AlgorithmAuto, fmt.Errorf("expected algorithm of %s, %s, %s, %s, or %s, got %s",
		AlgorithmAuto, AlgorithmBitEnum, AlgorithmMeetMiddle, AlgorithmDP, AlgorithmBranchBound, s)
}

// Options tunes a single search run. The zero value selects FindFirst
// mode, automatic algorithm selection, and defaults for everything else.
type Options struct {
	// Mode selects single-solution or exhaustive search.
	Mode Mode

	// Algorithm forces a specific engine; AlgorithmAuto (or empty) uses
	// the selection table. An override bypasses the table, never the
	// pre-filter.
	Algorithm Algorithm

	// Workers caps the worker pool. Defaults to runtime.NumCPU().
	Workers int

	// BatchSize is the number of masks/nodes processed between
	// cancellation checks. Defaults to constants.DefaultBatchSize.
	BatchSize int

	// MaxTableCells bounds the dynamic-programming table. Defaults to
	// constants.DefaultMaxTableCells.
	MaxTableCells int64

	// AllowEmptySubset reports the empty subset as a solution when zero
	// lies within the tolerance window. Off by default.
	AllowEmptySubset bool

	// Progress, when non-nil, receives monotonically increasing
	// found-counts. Sends are throttled and never block; dropped counts
	// carry no correctness obligation.
	Progress chan<- int64

	// Logger receives structured diagnostics; nil disables logging.
	Logger *zap.Logger
}

// Combination is one satisfying subset, expressed against the caller's
// original input: ascending original indices, the matching decimal values
// in original input order, and their sum rounded to two decimals.
type Combination struct {
	Indices []int     `json:"indices"`
	Values  []float64 `json:"values"`
	Sum     float64   `json:"sum"`
}

// Result is the outcome of one search run, owned by the caller.
type Result struct {
	Combinations []Combination `json:"combinations"`
	Algorithm    Algorithm     `json:"algorithm"`
	Elapsed      time.Duration `json:"elapsed"`
	Cancelled    bool          `json:"cancelled"`
}
