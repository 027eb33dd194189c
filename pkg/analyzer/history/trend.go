package history

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/panbanda/strata/pkg/stats"
)

// stableSlope is the per-day slope magnitude below which a trend reads as
// stable rather than directional.
const stableSlope = 1e-3

// computeTrends fits a least-squares line per tracked metric over the
// date-ordered records. X is days since the first commit, so slopes read as
// change per day. Returns nil for fewer than 2 records.
func computeTrends(records []Record) map[string]TrendStats {
	if len(records) < 2 {
		return nil
	}

	xs := make([]float64, len(records))
	start := records[0].CommitDate
	for i, r := range records {
		xs[i] = r.CommitDate.Sub(start).Hours() / 24
	}

	return map[string]TrendStats{
		MetricComplexity:      metricTrend(xs, records, false, func(r Record) float64 { return float64(r.Complexity) }),
		MetricMaintainability: metricTrend(xs, records, true, func(r Record) float64 { return r.Maintainability }),
		MetricEntropy:         metricTrend(xs, records, false, func(r Record) float64 { return r.Entropy }),
		MetricOwnership:       metricTrend(xs, records, false, func(r Record) float64 { return r.AuthorsPerFile }),
	}
}

func metricTrend(xs []float64, records []Record, higherIsBetter bool, value func(Record) float64) TrendStats {
	ys := make([]float64, len(records))
	for i, r := range records {
		ys[i] = value(r)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	// Flat series (and same-timestamp ties) zero the variance terms, which
	// turns the regression NaN; report zeros so the dataset stays
	// JSON-marshalable.
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		slope = 0
		intercept = stat.Mean(ys, nil)
	}
	ts := TrendStats{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    stat.RSquared(xs, ys, nil, intercept, slope),
		Correlation: stat.Correlation(xs, ys, nil),
		Direction:   direction(slope, higherIsBetter),
	}
	if math.IsNaN(ts.RSquared) || math.IsInf(ts.RSquared, 0) {
		ts.RSquared = 0
	}
	if math.IsNaN(ts.Correlation) || math.IsInf(ts.Correlation, 0) {
		ts.Correlation = 0
	}
	return ts
}

// direction reads a slope as a quality verdict. higherIsBetter flips the
// polarity: rising maintainability improves, rising complexity worsens.
func direction(slope float64, higherIsBetter bool) string {
	switch {
	case math.Abs(slope) <= stableSlope:
		return TrendStable
	case (slope > 0) == higherIsBetter:
		return TrendImproving
	default:
		return TrendWorsening
	}
}

// entropyStats summarizes the entropy distribution across records.
func entropyStats(records []Record) EntropyStats {
	if len(records) == 0 {
		return EntropyStats{}
	}

	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Entropy
	}
	sort.Float64s(values)

	return EntropyStats{
		P50: stats.Percentile(values, 50),
		P90: stats.Percentile(values, 90),
		P95: stats.Percentile(values, 95),
	}
}
