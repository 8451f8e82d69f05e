package changepoint

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult holds an independent two-sample t-test outcome.
type TTestResult struct {
	Statistic float64
	PValue    float64
	DF        float64
}

// IndependentTTest computes an equal-variance two-sample t-test between a and
// b with a two-sided p-value. Degenerate inputs (an empty side, fewer than
// three samples total, or a zero pooled variance with equal means) yield NaN
// rather than an error, mirroring how the test behaves on clamped boundary
// windows.
func IndependentTTest(a, b []float64) TTestResult {
	n1 := float64(len(a))
	n2 := float64(len(b))
	df := n1 + n2 - 2
	if n1 == 0 || n2 == 0 || df <= 0 {
		return TTestResult{Statistic: math.NaN(), PValue: math.NaN(), DF: df}
	}

	m1 := stat.Mean(a, nil)
	m2 := stat.Mean(b, nil)
	// sample variance of a single observation is NaN and propagates, matching
	// the reference behavior for one-sample windows
	v1 := stat.Variance(a, nil)
	v2 := stat.Variance(b, nil)

	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	t := (m1 - m2) / se
	if math.IsNaN(t) {
		return TTestResult{Statistic: math.NaN(), PValue: math.NaN(), DF: df}
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return TTestResult{Statistic: t, PValue: p, DF: df}
}
