package solver

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/iwvelando/sum-match/pkg/mathutil"
	"golang.org/x/sync/errgroup"
)

// runBitEnum exhaustively enumerates all 2^n inclusion masks. The mask
// space is partitioned into one contiguous range per worker; each worker
// walks its range in Gray-code order so every step updates the running
// sum with a single add or subtract. Workers share nothing but the
// result list, so insertion order in FindAll mode varies across runs.
func runBitEnum(ctx context.Context, s *search) error {
	sortByMagnitude(s.items)
	n := len(s.items)
	if n > 62 {
		return fmt.Errorf("bit enumeration supports at most 62 elements, got %d", n)
	}

	total := int64(1) << uint(n)
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
			s.enumerateMaskRange(gctx, start, end)
			return nil
		})
	}
	return g.Wait()
}

// enumerateMaskRange tests every mask whose Gray code corresponds to a
// rank in [start, end). Cancellation and the FindFirst stop flag are
// polled once per batch.
func (s *search) enumerateMaskRange(ctx context.Context, start, end int64) {
	gray := uint64(start) ^ uint64(start)>>1
	var sum int64
	for b := 0; b < len(s.items); b++ {
		if gray&(uint64(1)<<uint(b)) != 0 {
			sum += s.items[b].scaled
		}
	}

	sinceCheck := 0
	for i := start; i < end; i++ {
		if sinceCheck >= s.batch {
			sinceCheck = 0
			if s.halted(ctx) {
				return
			}
		}
		sinceCheck++

		if mathutil.AbsInt64(sum-s.target) <= s.tolerance {
			if s.emit(s.indicesForMask(gray)) {
				return
			}
		}

		if i+1 < end {
			bit := uint(bits.TrailingZeros64(uint64(i + 1)))
			gray ^= uint64(1) << bit
			if gray&(uint64(1)<<bit) != 0 {
				sum += s.items[bit].scaled
			} else {
				sum -= s.items[bit].scaled
			}
		}
	}
}
