package changepoint

// Detector finds a fixed number of changepoints in a series.
type Detector struct {
	Width        int
	Changepoints int
}

// NewDetector returns a detector scanning with the given window width and
// returning the given number of changepoints per series.
func NewDetector(width, changepoints int) *Detector {
	return &Detector{Width: width, Changepoints: changepoints}
}

// Detect returns strictly increasing changepoint indices into the series.
// The trailing end-of-series breakpoint reported by the segmentation is
// dropped; it marks no shift.
func (d *Detector) Detect(series []float64) ([]int, error) {
	bkps, err := NewWindow(d.Width).Fit(series).Predict(d.Changepoints)
	if err != nil {
		return nil, err
	}
	return bkps[:len(bkps)-1], nil
}
