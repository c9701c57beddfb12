package solver

import (
	"context"
	"fmt"
	"math/bits"
	"sort"

	"golang.org/x/sync/errgroup"
)

// halfSum is one subset of a half: its sum and the inclusion mask
// relative to the half's first element.
type halfSum struct {
	sum  int64
	mask uint64
}

// runMeetMiddle splits the magnitude-sorted array into two halves,
// enumerates every subset sum of each half across the worker pool, sorts
// the second half by sum, then binary-searches it for complements of each
// first-half sum. Every matching pair is a distinct index subset, so none
// are discarded. Complexity O(2^(n/2) log 2^(n/2)).
func runMeetMiddle(ctx context.Context, s *search) error {
	sortByMagnitude(s.items)
	n := len(s.items)
	if n > 62 {
		return fmt.Errorf("meet-in-the-middle supports at most 62 elements, got %d", n)
	}
	mid := n / 2

	first := s.enumerateHalf(ctx, 0, mid)
	second := s.enumerateHalf(ctx, mid, n)
	if s.halted(ctx) {
		return nil
	}

	sort.Slice(second, func(i, j int) bool { return second[i].sum < second[j].sum })

	mg, mctx := errgroup.WithContext(ctx)
	chunk := (len(first) + s.workers - 1) / s.workers
	for start := 0; start < len(first); start += chunk {
		end := start + chunk
		if end > len(first) {
			end = len(first)
		}
		segment := first[start:end]
		mg.Go(func() error {
			s.matchHalves(mctx, segment, second, mid)
			return nil
		})
	}
	return mg.Wait()
}

// enumerateHalf produces the subset sums of items[lo:hi], partitioning
// the half's rank space into one contiguous range per worker the same way
// bit enumeration partitions masks. Slots left unwritten by a cancelled
// worker are harmless: the caller checks halted before matching.
func (s *search) enumerateHalf(ctx context.Context, lo, hi int) []halfSum {
	size := hi - lo
	total := int64(1) << uint(size)
	out := make([]halfSum, total)

	workers := s.workers
	if int64(workers) > total {
		workers = int(total)
	}
	chunk := total/int64(workers) + 1

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := int64(w) * chunk
		if start >= total {
			break
		}
		end := start + chunk
		if end > total {
			end = total
		}
		g.Go(func() error {
			s.fillHalfRange(gctx, lo, size, start, end, out)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// fillHalfRange writes the half sums for ranks [start, end) into their
// slots of out, walking the ranks in Gray-code order so every step
// updates the running sum with a single add or subtract.
func (s *search) fillHalfRange(ctx context.Context, lo, size int, start, end int64, out []halfSum) {
	gray := uint64(start) ^ uint64(start)>>1
	var sum int64
	for b := 0; b < size; b++ {
		if gray&(uint64(1)<<uint(b)) != 0 {
			sum += s.items[lo+b].scaled
		}
	}

	sinceCheck := 0
	for i := start; i < end; i++ {
		if sinceCheck >= s.batch {
			sinceCheck = 0
			if ctx.Err() != nil {
				return
			}
		}
		sinceCheck++

		out[i] = halfSum{sum: sum, mask: gray}
		if i+1 < end {
			bit := uint(bits.TrailingZeros64(uint64(i + 1)))
			gray ^= uint64(1) << bit
			if gray&(uint64(1)<<bit) != 0 {
				sum += s.items[lo+int(bit)].scaled
			} else {
				sum -= s.items[lo+int(bit)].scaled
			}
		}
	}
}

// matchHalves scans a segment of first-half sums and emits every
// second-half complement within the tolerance window.
func (s *search) matchHalves(ctx context.Context, first, second []halfSum, mid int) {
	sinceCheck := 0
	for _, f := range first {
		if sinceCheck >= s.batch {
			sinceCheck = 0
			if s.halted(ctx) {
				return
			}
		}
		sinceCheck++

		lo := s.target - s.tolerance - f.sum
		hi := s.target + s.tolerance - f.sum
		i := sort.Search(len(second), func(k int) bool { return second[k].sum >= lo })
		for ; i < len(second) && second[i].sum <= hi; i++ {
			combined := f.mask | second[i].mask<<uint(mid)
			if s.emit(s.indicesForMask(combined)) {
				return
			}
		}
	}
}
