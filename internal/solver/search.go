// Package solver finds subsets of a list of two-decimal amounts whose sum
// equals a target value within a tolerance, each entry usable at most
// once. Inputs are converted to exact integer cents, cheap rejection
// tests run up front, and one of four engines (bit enumeration,
// meet-in-the-middle, dynamic programming, branch-and-bound) is selected
// by input size and mode. Engines saturate the available CPU cores and
// observe context cancellation at batch boundaries.
package solver

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iwvelando/sum-match/pkg/constants"
	"github.com/iwvelando/sum-match/pkg/mathutil"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// progressInterval is the minimum spacing between progress emissions.
const progressInterval = 100 * time.Millisecond

// search carries the state shared by all workers of one run. The sorted
// item slice is read-only once an engine's parallel phase starts; the
// match list and counter are the only mutable shared state.
type search struct {
	items      []scaledItem
	target     int64
	tolerance  int64
	mode       Mode
	allowEmpty bool
	workers    int
	batch      int
	maxCells   int64

	mu      sync.Mutex
	matches [][]int
	found   atomic.Int64
	stop    atomic.Bool

	progress chan<- int64
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// Search runs one subset-sum search. Pre-filter failures are returned
// synchronously before any engine starts. Cancellation via ctx is not an
// error: the returned result carries Cancelled=true along with whatever
// valid combinations were collected.
func Search(ctx context.Context, values []float64, target, tolerance float64, opts Options) (*Result, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if !mathutil.HasTwoDecimalPrecision(target) {
		return nil, fmt.Errorf("%w: target %v", ErrInvalidPrecision, target)
	}
	if !mathutil.HasTwoDecimalPrecision(tolerance) {
		return nil, fmt.Errorf("%w: tolerance %v", ErrInvalidPrecision, tolerance)
	}

	items, err := scaleInputs(values)
	if err != nil {
		return nil, err
	}
	targetScaled := mathutil.Scale(target)
	toleranceScaled := mathutil.Scale(tolerance)
	if err := prefilter(items, targetScaled, toleranceScaled); err != nil {
		return nil, err
	}

	s := &search{
		items:      items,
		target:     targetScaled,
		tolerance:  toleranceScaled,
		mode:       opts.Mode,
		allowEmpty: opts.AllowEmptySubset,
		workers:    opts.Workers,
		batch:      opts.BatchSize,
		maxCells:   opts.MaxTableCells,
		progress:   opts.Progress,
		logger:     logger,
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.batch <= 0 {
		s.batch = constants.DefaultBatchSize
	}
	if s.maxCells <= 0 {
		s.maxCells = constants.DefaultMaxTableCells
	}
	if s.progress != nil {
		s.limiter = rate.NewLimiter(rate.Every(progressInterval), 1)
	}

	eng, err := selectEngine(opts.Algorithm, len(items), opts.Mode, s)
	if err != nil {
		return nil, err
	}
	logger.Debug("selected algorithm",
		zap.String("op", "solver.Search"),
		zap.String("algorithm", string(eng.name)),
		zap.Int("inputs", len(items)),
		zap.String("mode", opts.Mode.String()),
	)

	if err := eng.run(ctx, s); err != nil {
		return nil, err
	}

	result := s.collect(values)
	result.Algorithm = eng.name
	result.Cancelled = ctx.Err() != nil
	result.Elapsed = time.Since(start)
	s.publishFinal()

	logger.Info("search complete",
		zap.String("op", "solver.Search"),
		zap.String("algorithm", string(eng.name)),
		zap.Int("combinations", len(result.Combinations)),
		zap.Duration("elapsed", result.Elapsed),
		zap.Bool("cancelled", result.Cancelled),
	)
	return result, nil
}

// emit records a matching index set. The returned flag tells the calling
// worker to halt, which happens in FindFirst mode once a match lands.
// Empty subsets are dropped unless explicitly permitted.
func (s *search) emit(indices []int) bool {
	if len(indices) == 0 && !s.allowEmpty {
		return false
	}
	set := append([]int(nil), indices...)
	sort.Ints(set)

	s.mu.Lock()
	if s.mode == FindFirst && len(s.matches) > 0 {
		s.mu.Unlock()
		return true
	}
	s.matches = append(s.matches, set)
	count := s.found.Add(1)
	s.publish(count)
	s.mu.Unlock()

	if s.mode == FindFirst {
		s.stop.Store(true)
		return true
	}
	return false
}

// halted reports whether workers should wind down: cooperative stop after
// a FindFirst match, or caller cancellation. Engines poll it once per
// batch so the latency to observe cancellation stays bounded.
func (s *search) halted(ctx context.Context) bool {
	return s.stop.Load() || ctx.Err() != nil
}

// publish forwards a found-count to the progress channel, rate-limited
// and never blocking. Callers hold mu, which keeps the delivered counts
// monotonically increasing; the send cannot stall the critical section.
func (s *search) publish(count int64) {
	if s.progress == nil || !s.limiter.Allow() {
		return
	}
	select {
	case s.progress <- count:
	default:
	}
}

// publishFinal pushes the final count past the rate limiter so consumers
// see the terminal value.
func (s *search) publishFinal() {
	if s.progress == nil {
		return
	}
	select {
	case s.progress <- s.found.Load():
	default:
	}
}

// sumBounds returns the minimum and maximum achievable subset sums.
func (s *search) sumBounds() (int64, int64) {
	var minSum, maxSum int64
	for _, it := range s.items {
		if it.scaled > 0 {
			maxSum += it.scaled
		} else {
			minSum += it.scaled
		}
	}
	return minSum, maxSum
}

// indicesForMask maps a bitmask over the sorted items back to original
// input indices.
func (s *search) indicesForMask(mask uint64) []int {
	indices := make([]int, 0, bits.OnesCount64(mask))
	for b := 0; b < len(s.items); b++ {
		if mask&(uint64(1)<<uint(b)) != 0 {
			indices = append(indices, s.items[b].index)
		}
	}
	return indices
}
