package solver

import (
	"sort"

	"github.com/iwvelando/sum-match/pkg/mathutil"
)

// sortByMagnitude orders items descending by absolute value. Bit
// enumeration and meet-in-the-middle use it to balance split halves;
// branch-and-bound uses it to tighten bound estimates early. Ties break
// on original index so repeated runs sort identically.
func sortByMagnitude(items []scaledItem) {
	sort.Slice(items, func(i, j int) bool {
		ai, aj := mathutil.AbsInt64(items[i].scaled), mathutil.AbsInt64(items[j].scaled)
		if ai != aj {
			return ai > aj
		}
		return items[i].index < items[j].index
	})
}

// sortByValue orders items ascending by value for monotonic
// dynamic-programming table construction.
func sortByValue(items []scaledItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].scaled != items[j].scaled {
			return items[i].scaled < items[j].scaled
		}
		return items[i].index < items[j].index
	})
}
