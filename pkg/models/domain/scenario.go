package domain

// Scenario is one CO2 emission pathway's concentration-anomaly trajectory.
// Values are aligned with the dataset time vector and never mutated after load.
type Scenario struct {
	Name   string
	Values []float64
}

// Dataset holds the shared time vector and every scenario series loaded from
// an input file, in the file's column order.
type Dataset struct {
	Time      []float64
	Scenarios []Scenario
}

// Len returns the number of samples per series.
func (d *Dataset) Len() int {
	return len(d.Time)
}
