package solver

import (
	"context"
	"fmt"
)

// runDP solves the search as a 0/1 knapsack over exact integer amounts.
// It builds a layered reachability table over the feasible sum range
// (layer i covers the first i items of the value-ascending array), then
// backtracks every in-window sum to its subsets with an explicit frame
// stack. FindAll enumerates every distinct path; FindFirst stops at the
// first complete subset.
func runDP(ctx context.Context, s *search) error {
	sortByValue(s.items)
	n := len(s.items)

	minSum, maxSum := s.sumBounds()
	width := maxSum - minSum + 1
	cells := int64(n+1) * width
	if cells > s.maxCells {
		return fmt.Errorf("%w: %d cells needed, limit %d", ErrTableTooLarge, cells, s.maxCells)
	}
	offset := -minSum

	// reach[i][j] is true when sum j-offset is achievable using a subset
	// of the first i items.
	reach := make([][]bool, n+1)
	for i := range reach {
		reach[i] = make([]bool, width)
	}
	reach[0][offset] = true
	for i := 1; i <= n; i++ {
		if ctx.Err() != nil {
			return nil
		}
		v := s.items[i-1].scaled
		prev, cur := reach[i-1], reach[i]
		for j := int64(0); j < width; j++ {
			if !prev[j] {
				continue
			}
			cur[j] = true
			if k := j + v; k >= 0 && k < width {
				cur[k] = true
			}
		}
	}

	lo := s.target - s.tolerance
	if lo < minSum {
		lo = minSum
	}
	hi := s.target + s.tolerance
	if hi > maxSum {
		hi = maxSum
	}
	for t := lo; t <= hi; t++ {
		if !reach[n][t+offset] {
			continue
		}
		if s.backtrack(ctx, reach, offset, t) {
			return nil
		}
	}
	return nil
}

// dpFrame is one node of the iterative backtracking walk: deciding item
// layer-1 while sitting on column idx of reach[layer].
type dpFrame struct {
	layer int
	idx   int64
	state uint8 // 0: exclude branch pending, 1: include branch pending, 2: exhausted
	took  bool  // the edge into this frame included item `layer`
}

// backtrack enumerates the subsets behind one reachable sum. Returns true
// when the walk was halted (first match found in FindFirst mode, or
// cancellation).
func (s *search) backtrack(ctx context.Context, reach [][]bool, offset, t int64) bool {
	n := len(s.items)
	width := int64(len(reach[0]))
	stack := make([]dpFrame, 0, n+1)
	stack = append(stack, dpFrame{layer: n, idx: t + offset})
	picks := make([]int, 0, n)

	steps := 0
	for len(stack) > 0 {
		steps++
		if steps%s.batch == 0 && s.halted(ctx) {
			return true
		}

		f := &stack[len(stack)-1]
		if f.layer == 0 {
			indices := make([]int, len(picks))
			for i, p := range picks {
				indices[i] = s.items[p].index
			}
			if s.emit(indices) {
				return true
			}
			took := f.took
			stack = stack[:len(stack)-1]
			if took {
				picks = picks[:len(picks)-1]
			}
			continue
		}

		switch f.state {
		case 0:
			f.state = 1
			if reach[f.layer-1][f.idx] {
				stack = append(stack, dpFrame{layer: f.layer - 1, idx: f.idx})
			}
		case 1:
			f.state = 2
			v := s.items[f.layer-1].scaled
			if k := f.idx - v; k >= 0 && k < width && reach[f.layer-1][k] {
				picks = append(picks, f.layer-1)
				stack = append(stack, dpFrame{layer: f.layer - 1, idx: k, took: true})
			}
		default:
			took := f.took
			stack = stack[:len(stack)-1]
			if took {
				picks = picks[:len(picks)-1]
			}
		}
	}
	return false
}
