// Package stats provides small statistical helpers shared by the
// history summaries.
package stats

// Percentile returns the p-th percentile of a sorted slice using the
// nearest-rank index. The slice must already be sorted ascending.
// Returns 0 for an empty slice.
func Percentile(sorted []float64, p int) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
