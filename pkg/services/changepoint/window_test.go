package changepoint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepSeries holds each level for 10 samples, so every level boundary is a
// clear changepoint on a candidate index.
func stepSeries(levels []float64) []float64 {
	series := make([]float64, 0, len(levels)*10)
	for _, level := range levels {
		for i := 0; i < 10; i++ {
			series = append(series, level)
		}
	}
	return series
}

func shiftSeries() []float64 {
	// 50 low samples then 50 high samples, with a small deterministic wiggle
	// so neither side is perfectly flat
	series := make([]float64, 100)
	for i := range series {
		series[i] = 0.1 * math.Sin(float64(i))
		if i >= 50 {
			series[i] += 10
		}
	}
	return series
}

func TestDetector_SingleLevelShift(t *testing.T) {
	detector := NewDetector(5, 1)

	cps, err := detector.Detect(shiftSeries())

	require.NoError(t, err)
	require.Len(t, cps, 1)
	assert.InDelta(t, 50, cps[0], 3)
}

func TestDetector_ReturnsRequestedCount(t *testing.T) {
	series := stepSeries([]float64{0, 5, 1, 8, 3, 9, 2, 7, 4, 6})

	for _, k := range []int{1, 2, 3, 5} {
		cps, err := NewDetector(5, k).Detect(series)

		require.NoError(t, err)
		assert.Len(t, cps, k)
		for i, cp := range cps {
			assert.GreaterOrEqual(t, cp, 0)
			assert.Less(t, cp, len(series))
			if i > 0 {
				assert.Greater(t, cp, cps[i-1], "indices must be strictly increasing")
			}
		}
	}
}

func TestDetector_Deterministic(t *testing.T) {
	series := stepSeries([]float64{0, 5, 1, 8, 3, 9, 2, 7, 4, 6})
	detector := NewDetector(5, 5)

	first, err := detector.Detect(series)
	require.NoError(t, err)
	second, err := detector.Detect(series)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDetector_DropsTerminalBreakpoint(t *testing.T) {
	series := stepSeries([]float64{0, 5, 1, 8})

	cps, err := NewDetector(5, 2).Detect(series)

	require.NoError(t, err)
	for _, cp := range cps {
		assert.NotEqual(t, len(series), cp)
	}
}

func TestDetector_FlatSeriesHasNoPeaks(t *testing.T) {
	series := make([]float64, 60)
	for i := range series {
		series[i] = 4.2
	}

	cps, err := NewDetector(5, 1).Detect(series)

	require.NoError(t, err)
	assert.Empty(t, cps)
}

func TestDetector_InfeasibleCountFails(t *testing.T) {
	short := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	_, err := NewDetector(5, 5).Detect(short)

	assert.ErrorIs(t, err, ErrBadSegmentation)
}

func TestWindow_PredictIncludesTerminalSentinel(t *testing.T) {
	series := stepSeries([]float64{0, 5, 1, 8})

	bkps, err := NewWindow(5).Fit(series).Predict(2)

	require.NoError(t, err)
	require.NotEmpty(t, bkps)
	assert.Equal(t, len(series), bkps[len(bkps)-1])
}

func TestWindow_PredictBeforeFitFails(t *testing.T) {
	_, err := NewWindow(5).Predict(1)
	assert.Error(t, err)
}

func TestWindow_FewerPeaksThanRequested(t *testing.T) {
	// one boundary only, so at most one usable peak
	series := stepSeries([]float64{0, 10, 10, 10})

	bkps, err := NewWindow(5).Fit(series).Predict(3)

	require.NoError(t, err)
	assert.Less(t, len(bkps)-1, 3)
	assert.Contains(t, bkps, 10)
}

func TestRelMaxWrap(t *testing.T) {
	peaks := relMaxWrap([]float64{0, 1, 0, 0, 3, 0}, 1)
	assert.Equal(t, []int{1, 4}, peaks)

	// constant sequences have no strict maxima
	assert.Empty(t, relMaxWrap([]float64{2, 2, 2, 2}, 1))

	// wrap-around: a leading maximum competes with the trailing element
	assert.Equal(t, []int{0}, relMaxWrap([]float64{5, 1, 2, 3}, 1))
}
