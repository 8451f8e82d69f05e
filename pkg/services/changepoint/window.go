// Package changepoint segments scenario series into distribution shifts and
// scores each shift with a local two-sample t-test.
package changepoint

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrBadSegmentation is returned when the requested number of breakpoints
// cannot be placed in a series of the given length.
var ErrBadSegmentation = errors.New("changepoint: requested breakpoints are infeasible for series length")

// Window scans a series with a sliding window and scores each candidate index
// by the L2 cost reduction of splitting the window there. It reproduces the
// windowed segmentation contract this analysis was built around: candidate
// indices advance by Jump, the effective window width is rounded down to an
// even number, and breakpoints are picked greedily from the local maxima of
// the gain curve. The terminal breakpoint (series length) is always part of
// the prediction.
type Window struct {
	Width   int // sliding window width, effective width is 2*(Width/2)
	Jump    int // candidate index stride
	MinSize int // minimum admissible segment length

	n      int
	inds   []int
	gains  []float64
	fitted bool
}

// NewWindow returns a Window detector with the scan width set and the
// remaining parameters at their conventional values.
func NewWindow(width int) *Window {
	return &Window{Width: width, Jump: 5, MinSize: 2}
}

// Fit computes the gain curve for the signal. The receiver is returned to
// allow Fit(...).Predict(...) chaining.
func (w *Window) Fit(signal []float64) *Window {
	half := w.Width / 2 // effective width is 2*half
	w.n = len(signal)
	w.inds = w.inds[:0]
	w.gains = w.gains[:0]

	for k := 0; k < w.n; k += w.Jump {
		if k < half || k >= w.n-half {
			continue
		}
		gain := l2Cost(signal[k-half : k+half])
		gain -= l2Cost(signal[k-half:k]) + l2Cost(signal[k:k+half])
		w.inds = append(w.inds, k)
		w.gains = append(w.gains, gain)
	}

	w.fitted = true
	return w
}

// Predict returns the breakpoint indices for the requested breakpoint count,
// ascending, always ending with the series length sentinel. When the gain
// curve has fewer usable peaks than requested, fewer breakpoints are returned.
func (w *Window) Predict(nBkps int) ([]int, error) {
	if !w.fitted {
		return nil, errors.New("changepoint: predict called before fit")
	}
	if !feasible(w.n, nBkps, w.Jump, w.MinSize) {
		return nil, ErrBadSegmentation
	}

	bkps := []int{w.n}

	order := max(max(w.Width/2*2, 2*w.MinSize)/(2*w.Jump), 1)
	peaks := relMaxWrap(w.gains, order)
	if len(peaks) == 0 {
		return bkps, nil
	}

	// ascending by gain, ties broken by index, so the best peak pops last
	sort.Slice(peaks, func(i, j int) bool {
		if w.gains[peaks[i]] != w.gains[peaks[j]] {
			return w.gains[peaks[i]] < w.gains[peaks[j]]
		}
		return w.inds[peaks[i]] < w.inds[peaks[j]]
	})

	for len(bkps)-1 < nBkps && len(peaks) > 0 {
		p := peaks[len(peaks)-1]
		peaks = peaks[:len(peaks)-1]
		bkps = append(bkps, w.inds[p])
	}

	sort.Ints(bkps)
	return bkps, nil
}

// l2Cost is the sum of squared deviations from the segment mean.
func l2Cost(seg []float64) float64 {
	if len(seg) == 0 {
		return 0
	}
	m := stat.Mean(seg, nil)
	var c float64
	for _, v := range seg {
		d := v - m
		c += d * d
	}
	return c
}

// relMaxWrap returns the positions of strict local maxima of xs, comparing
// each element against its neighbors up to the given order with wrap-around
// at both ends.
func relMaxWrap(xs []float64, order int) []int {
	m := len(xs)
	if m == 0 {
		return nil
	}
	var peaks []int
	for i := 0; i < m; i++ {
		isPeak := true
		for d := 1; d <= order; d++ {
			left := ((i-d)%m + m) % m
			right := (i + d) % m
			if !(xs[i] > xs[left] && xs[i] > xs[right]) {
				isPeak = false
				break
			}
		}
		if isPeak {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

func feasible(n, nBkps, jump, minSize int) bool {
	if nBkps < 0 {
		return false
	}
	segJump := (minSize + jump - 1) / jump * jump
	return nBkps <= n/jump && nBkps*segJump+minSize <= n
}
