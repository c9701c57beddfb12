package solver

import (
	"context"
	"fmt"

	"github.com/iwvelando/sum-match/pkg/constants"
)

// engine binds a strategy name to its applicability rule and entry point.
type engine struct {
	name    Algorithm
	applies func(n int, mode Mode, s *search) bool
	run     func(ctx context.Context, s *search) error
}

// selectionTable is evaluated top to bottom; the first rule whose
// condition holds wins. New strategies slot in without touching call
// sites. The final branch-and-bound rule catches large FindAll searches
// whose dynamic-programming table would not fit in memory; there it runs
// as an exhaustive pruned DFS.
var selectionTable = []engine{
	{AlgorithmBitEnum, func(n int, _ Mode, _ *search) bool { return n <= constants.BitEnumMaxElements }, runBitEnum},
	{AlgorithmMeetMiddle, func(n int, _ Mode, _ *search) bool { return n <= constants.MeetMiddleMaxElements }, runMeetMiddle},
	{AlgorithmBranchBound, func(_ int, mode Mode, _ *search) bool { return mode == FindFirst }, runBranchBound},
	{AlgorithmDP, func(_ int, _ Mode, s *search) bool { return s.tableFits() }, runDP},
	{AlgorithmBranchBound, func(int, Mode, *search) bool { return true }, runBranchBound},
}

// overrides maps an explicit caller override to its engine. Overrides
// bypass the table but never the pre-filter.
var overrides = map[Algorithm]func(ctx context.Context, s *search) error{
	AlgorithmBitEnum:     runBitEnum,
	AlgorithmMeetMiddle:  runMeetMiddle,
	AlgorithmDP:          runDP,
	AlgorithmBranchBound: runBranchBound,
}

func selectEngine(override Algorithm, n int, mode Mode, s *search) (engine, error) {
	if override != "" && override != AlgorithmAuto {
		run, ok := overrides[override]
		if !ok {
			return engine{}, fmt.Errorf("unknown algorithm override %q", override)
		}
		return engine{name: override, run: run}, nil
	}
	for _, e := range selectionTable {
		if e.applies(n, mode, s) {
			return e, nil
		}
	}
	return engine{}, fmt.Errorf("no engine applies to %d inputs", n)
}

// tableFits reports whether the dynamic-programming table for this search
// stays within the configured cell ceiling.
func (s *search) tableFits() bool {
	minSum, maxSum := s.sumBounds()
	width := maxSum - minSum + 1
	return int64(len(s.items)+1)*width <= s.maxCells
}
