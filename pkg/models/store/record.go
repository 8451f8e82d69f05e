package store

// EvaluationRow is the flat CSV representation of one evaluation record.
type EvaluationRow struct {
	Series        string
	Changepoint   int
	Time          float64
	Concentration float64
	Statistic     float64
	PValue        float64
}

// SummaryRow is the flat CSV representation of one scenario summary.
type SummaryRow struct {
	Series            string
	TimeMean          float64
	TimeStd           float64
	ConcentrationMean float64
	ConcentrationStd  float64
	StatisticMean     float64
	StatisticStd      float64
	PValueMean        float64
	PValueStd         float64
}

// EvaluationColumns is the changepoint_results.csv header, in order.
var EvaluationColumns = []string{
	"Series", "Changepoint", "Time", "CO2_Concentration", "t-statistic", "p-value",
}

// SummaryColumns is the changepoint_summary.csv header, in order.
var SummaryColumns = []string{
	"Series",
	"Time_mean", "Time_std",
	"CO2_Concentration_mean", "CO2_Concentration_std",
	"t-statistic_mean", "t-statistic_std",
	"p-value_mean", "p-value_std",
}
