package analysis

import (
	"math"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// Summarize groups evaluation records by series label, preserving
// first-appearance order, and computes mean and sample standard deviation of
// each numeric field per group. NaN field values are skipped when aggregating;
// a group left with a single usable value keeps a NaN standard deviation.
func Summarize(records []domain.EvaluationRecord) []domain.ScenarioSummary {
	var order []string
	groups := make(map[string][]domain.EvaluationRecord)

	for _, rec := range records {
		if _, seen := groups[rec.Series]; !seen {
			order = append(order, rec.Series)
		}
		groups[rec.Series] = append(groups[rec.Series], rec)
	}

	summaries := make([]domain.ScenarioSummary, 0, len(order))
	for _, label := range order {
		recs := groups[label]
		summaries = append(summaries, domain.ScenarioSummary{
			Series:        label,
			Time:          fieldStats(recs, func(r domain.EvaluationRecord) float64 { return r.Time }),
			Concentration: fieldStats(recs, func(r domain.EvaluationRecord) float64 { return r.Concentration }),
			Statistic:     fieldStats(recs, func(r domain.EvaluationRecord) float64 { return r.Statistic }),
			PValue:        fieldStats(recs, func(r domain.EvaluationRecord) float64 { return r.PValue }),
		})
	}
	return summaries
}

func fieldStats(recs []domain.EvaluationRecord, field func(domain.EvaluationRecord) float64) domain.FieldStats {
	xs := make([]float64, 0, len(recs))
	for _, r := range recs {
		if v := field(r); !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return domain.FieldStats{Mean: math.NaN(), Std: math.NaN()}
	}
	return domain.FieldStats{
		Mean: stat.Mean(xs, nil),
		Std:  stat.StdDev(xs, nil), // NaN for a single value
	}
}
