package solver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/sum-match/pkg/mathutil"
)

// collect converts the recorded index sets into caller-facing
// combinations: duplicates dropped (the partitioned engines cannot
// overlap, so this is an invariant check rather than a repair), original
// decimal values restored in input order, and FindAll results placed in
// canonical order by ascending original-index sequence so repeated runs
// return identical content regardless of worker scheduling.
func (s *search) collect(values []float64) *Result {
	s.mu.Lock()
	matches := s.matches
	s.mu.Unlock()
	if s.mode == FindFirst && len(matches) > 1 {
		matches = matches[:1]
	}

	seen := make(map[string]struct{}, len(matches))
	combinations := make([]Combination, 0, len(matches))
	for _, set := range matches {
		key := indexKey(set)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		// Summing in cents keeps the reported sum exact regardless of
		// how much float noise the original values carry.
		vals := make([]float64, len(set))
		var cents int64
		for i, idx := range set {
			vals[i] = values[idx]
			cents += mathutil.Scale(values[idx])
		}
		combinations = append(combinations, Combination{
			Indices: set,
			Values:  vals,
			Sum:     mathutil.Unscale(cents),
		})
	}

	if s.mode == FindAll {
		sort.Slice(combinations, func(i, j int) bool {
			return lessIndexSets(combinations[i].Indices, combinations[j].Indices)
		})
	}
	return &Result{Combinations: combinations}
}

// indexKey builds a dedup key from an ascending index set.
func indexKey(set []int) string {
	var b strings.Builder
	for _, idx := range set {
		b.WriteString(strconv.Itoa(idx))
		b.WriteByte(',')
	}
	return b.String()
}

// lessIndexSets orders ascending index sets lexicographically.
func lessIndexSets(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
