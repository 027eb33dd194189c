package history

import "math"

// CalculateEntropy computes the Shannon entropy of a commit's change
// distribution. The input maps file paths to change counts; the result is
// measured in bits. A commit concentrated on one file scores 0, a commit
// spread evenly across k files scores log2(k).
func CalculateEntropy(changes map[string]int) float64 {
	total := 0
	for _, n := range changes {
		total += n
	}
	if total == 0 {
		return 0
	}

	entropy := 0.0
	for _, n := range changes {
		if n <= 0 {
			continue
		}
		p := float64(n) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
