package measure

import (
	"math"
	"strings"
)

// maintainabilityIndex computes the normalized maintainability index on a
// 0-100 scale from Halstead volume, summed cyclomatic complexity, and source
// line count:
//
//	MI = 100 * (171 - 5.2*ln(V) - 0.23*CC - 16.2*ln(SLOC)) / 171
//
// clamped to [0, 100]. Empty or trivial files score the 100 ceiling.
func maintainabilityIndex(volume float64, cyclomatic uint32, sloc int) float64 {
	v := math.Log(math.Max(1, volume))
	l := math.Log(math.Max(1, float64(sloc)))

	mi := 171 - 5.2*v - 0.23*float64(cyclomatic) - 16.2*l
	mi = mi * 100 / 171

	if mi < 0 {
		return 0
	}
	if mi > 100 {
		return 100
	}
	return mi
}

// countSourceLines counts non-blank lines.
func countSourceLines(content []byte) int {
	lines := 0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return lines
}
