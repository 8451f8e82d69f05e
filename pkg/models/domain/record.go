package domain

// Significance is the outcome of a local two-sample t-test at a changepoint.
type Significance struct {
	Statistic float64
	PValue    float64
}

// EvaluationRecord describes one detected changepoint in one scenario.
type EvaluationRecord struct {
	Series        string // 1-based scenario label, e.g. "p3"
	Changepoint   int    // 1-based ordinal within the scenario
	Time          float64
	Concentration float64
	Statistic     float64
	PValue        float64
}

// FieldStats is a mean/standard-deviation pair over one record field.
type FieldStats struct {
	Mean float64
	Std  float64
}

// ScenarioSummary aggregates a scenario's evaluation records. Std fields are
// NaN for single-record scenarios, matching sample standard deviation.
type ScenarioSummary struct {
	Series        string
	Time          FieldStats
	Concentration FieldStats
	Statistic     FieldStats
	PValue        FieldStats
}
