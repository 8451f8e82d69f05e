package changepoint

import (
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Evaluator scores changepoints by comparing short windows on either side.
type Evaluator struct {
	Window int
}

// NewEvaluator returns an evaluator using up to window samples per side.
func NewEvaluator(window int) *Evaluator {
	return &Evaluator{Window: window}
}

// Evaluate runs a two-sample t-test between the up-to-Window samples before
// cp and the up-to-Window samples starting at cp. Windows are clamped at the
// series boundaries; the effective sample shrinks silently there, which lowers
// test power without any warning.
func (e *Evaluator) Evaluate(series []float64, cp int) domain.Significance {
	lo := cp - e.Window
	if lo < 0 {
		lo = 0
	}
	hi := cp + e.Window
	if hi > len(series) {
		hi = len(series)
	}

	res := IndependentTTest(series[lo:cp], series[cp:hi])
	return domain.Significance{Statistic: res.Statistic, PValue: res.PValue}
}
