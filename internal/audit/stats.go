package audit

import (
	"math"
	"sort"
)

// distribution holds the descriptive statistics used by the revenue
// distribution table and the outlier check.
type distribution struct {
	Mean, Median, Std float64
	Min, Max          float64
	Q1, Q3            float64
}

func describe(vals []float64) distribution {
	if len(vals) == 0 {
		return distribution{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	// sample standard deviation
	variance := 0.0
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	if len(sorted) > 1 {
		variance /= float64(len(sorted) - 1)
	}

	return distribution{
		Mean:   mean,
		Median: percentile(sorted, 0.50),
		Std:    math.Sqrt(variance),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Q1:     percentile(sorted, 0.25),
		Q3:     percentile(sorted, 0.75),
	}
}

// outlierCounts counts values outside Q3+3×IQR and Q1-3×IQR.
func outlierCounts(vals []float64) (upper, lower int) {
	if len(vals) == 0 {
		return 0, 0
	}
	dist := describe(vals)
	iqr := dist.Q3 - dist.Q1
	for _, v := range vals {
		if v > dist.Q3+3*iqr {
			upper++
		}
		if v < dist.Q1-3*iqr {
			lower++
		}
	}
	return upper, lower
}

// percentile interpolates linearly between order statistics; vals must
// already be sorted.
func percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	pos := p * float64(len(vals)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo]*(1-frac) + vals[hi]*frac
}
