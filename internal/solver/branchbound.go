package solver

import (
	"context"

	"github.com/iwvelando/sum-match/pkg/mathutil"
	"golang.org/x/sync/errgroup"
)

// bbSeedDepthCap bounds the task frontier so seeding never creates more
// than 2^10 tasks.
const bbSeedDepthCap = 10

// bbTask is a fixed prefix of include/exclude decisions: the partial sum
// and the included positions in the sorted array.
type bbTask struct {
	sum   int64
	picks []int
}

// bbFrame is one node of the iterative depth-first walk.
type bbFrame struct {
	depth int
	sum   int64
	state uint8 // 0: include branch pending, 1: exclude branch pending, 2: exhausted
	took  bool  // the edge into this frame included item depth-1
}

// runBranchBound searches the magnitude-sorted array depth first with
// bound-based pruning. Decision prefixes up to a fixed depth are expanded
// into independent tasks, then explored across the worker pool with an
// explicit frame stack (input sizes reach 200, too deep to lean on
// recursion). The include branch is explored before exclude: greedy-first
// ordering reaches a first solution sooner. In FindAll mode the same walk
// runs exhaustively, never stopping early.
func runBranchBound(ctx context.Context, s *search) error {
	sortByMagnitude(s.items)
	n := len(s.items)

	sufPos := make([]int64, n+1)
	sufNeg := make([]int64, n+1)
	for i := n - 1; i >= 0; i-- {
		sufPos[i], sufNeg[i] = sufPos[i+1], sufNeg[i+1]
		if v := s.items[i].scaled; v > 0 {
			sufPos[i] += v
		} else {
			sufNeg[i] += v
		}
	}

	depth := (n + 3) / 4
	if depth > bbSeedDepthCap {
		depth = bbSeedDepthCap
	}
	tasks := s.seedTasks(depth, sufPos, sufNeg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			s.exploreTask(gctx, task, depth, sufPos, sufNeg)
			return nil
		})
	}
	return g.Wait()
}

// feasible reports whether the tolerance window intersects the sum range
// still reachable from depth: bestCase includes every remaining positive
// value, worstCase every remaining negative one.
func (s *search) feasible(sum int64, depth int, sufPos, sufNeg []int64) bool {
	bestCase := sum + sufPos[depth]
	worstCase := sum + sufNeg[depth]
	return s.target-s.tolerance <= bestCase && s.target+s.tolerance >= worstCase
}

// seedTasks expands the decision tree breadth first to the given depth,
// pruning infeasible prefixes as it goes. Include branches are listed
// first to preserve greedy-first ordering across workers.
func (s *search) seedTasks(depth int, sufPos, sufNeg []int64) []bbTask {
	tasks := []bbTask{{}}
	for d := 0; d < depth; d++ {
		v := s.items[d].scaled
		next := make([]bbTask, 0, 2*len(tasks))
		for _, t := range tasks {
			if !s.feasible(t.sum, d, sufPos, sufNeg) {
				continue
			}
			included := make([]int, 0, len(t.picks)+1)
			included = append(included, t.picks...)
			included = append(included, d)
			next = append(next,
				bbTask{sum: t.sum + v, picks: included},
				bbTask{sum: t.sum, picks: t.picks},
			)
		}
		tasks = next
	}
	return tasks
}

// exploreTask walks the subtree under one decision prefix. Complete
// subsets surface at depth n; everything else is pruned or extended.
func (s *search) exploreTask(ctx context.Context, task bbTask, startDepth int, sufPos, sufNeg []int64) {
	n := len(s.items)
	stack := make([]bbFrame, 0, n-startDepth+1)
	stack = append(stack, bbFrame{depth: startDepth, sum: task.sum})
	picks := append(make([]int, 0, n), task.picks...)

	steps := 0
	for len(stack) > 0 {
		steps++
		if steps%s.batch == 0 && s.halted(ctx) {
			return
		}

		f := &stack[len(stack)-1]
		if f.depth == n {
			if mathutil.AbsInt64(f.sum-s.target) <= s.tolerance {
				indices := make([]int, len(picks))
				for i, p := range picks {
					indices[i] = s.items[p].index
				}
				if s.emit(indices) {
					return
				}
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
			if !s.feasible(f.sum, f.depth, sufPos, sufNeg) {
				f.state = 2
				continue
			}
			f.state = 1
			v := s.items[f.depth].scaled
			picks = append(picks, f.depth)
			stack = append(stack, bbFrame{depth: f.depth + 1, sum: f.sum + v, took: true})
		case 1:
			f.state = 2
			stack = append(stack, bbFrame{depth: f.depth + 1, sum: f.sum})
		default:
			took := f.took
			stack = stack[:len(stack)-1]
			if took {
				picks = picks[:len(picks)-1]
			}
		}
	}
}
