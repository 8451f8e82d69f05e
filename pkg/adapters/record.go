package adapters

import (
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
)

func MapEvaluationDomainToStore(rec domain.EvaluationRecord) store.EvaluationRow {
	return store.EvaluationRow{
		Series:        rec.Series,
		Changepoint:   rec.Changepoint,
		Time:          rec.Time,
		Concentration: rec.Concentration,
		Statistic:     rec.Statistic,
		PValue:        rec.PValue,
	}
}

func MapEvaluationStoreToDomain(row store.EvaluationRow) domain.EvaluationRecord {
	return domain.EvaluationRecord{
		Series:        row.Series,
		Changepoint:   row.Changepoint,
		Time:          row.Time,
		Concentration: row.Concentration,
		Statistic:     row.Statistic,
		PValue:        row.PValue,
	}
}

func MapSummaryDomainToStore(sum domain.ScenarioSummary) store.SummaryRow {
	return store.SummaryRow{
		Series:            sum.Series,
		TimeMean:          sum.Time.Mean,
		TimeStd:           sum.Time.Std,
		ConcentrationMean: sum.Concentration.Mean,
		ConcentrationStd:  sum.Concentration.Std,
		StatisticMean:     sum.Statistic.Mean,
		StatisticStd:      sum.Statistic.Std,
		PValueMean:        sum.PValue.Mean,
		PValueStd:         sum.PValue.Std,
	}
}
