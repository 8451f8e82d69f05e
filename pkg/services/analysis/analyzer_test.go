package analysis

import (
	"bytes"
	"context"
	"testing"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/changepoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset(t *testing.T) *domain.Dataset {
	t.Helper()

	levels := [][]float64{
		{0, 5, 1, 8, 3, 9, 2, 7, 4, 6},
		{2, 9, 4, 1, 8, 3, 7, 0, 6, 5},
	}

	timeVec := make([]float64, 100)
	for i := range timeVec {
		timeVec[i] = float64(i + 1)
	}

	scenarios := make([]domain.Scenario, 0, len(levels))
	for s, lv := range levels {
		values := make([]float64, 0, 100)
		for _, level := range lv {
			for i := 0; i < 10; i++ {
				values = append(values, level)
			}
		}
		scenarios = append(scenarios, domain.Scenario{
			Name:   []string{"co2_low", "co2_high"}[s],
			Values: values,
		})
	}

	return &domain.Dataset{Time: timeVec, Scenarios: scenarios}
}

func newTestAnalyzer(out *bytes.Buffer) *Analyzer {
	return NewAnalyzer(
		changepoint.NewDetector(5, 3),
		changepoint.NewEvaluator(3),
		out,
	)
}

func TestAnalyzer_Run(t *testing.T) {
	ds := testDataset(t)
	var out bytes.Buffer

	records, err := newTestAnalyzer(&out).Run(context.Background(), ds)

	require.NoError(t, err)
	require.Len(t, records, 6)

	// scenarios keep input order and 1-based labels
	assert.Equal(t, "p1", records[0].Series)
	assert.Equal(t, "p2", records[3].Series)

	for s := 0; s < 2; s++ {
		for j := 0; j < 3; j++ {
			rec := records[s*3+j]
			assert.Equal(t, j+1, rec.Changepoint)
		}
	}

	// display fields derive from the changepoint index
	for _, rec := range records {
		assert.Contains(t, ds.Time, rec.Time)
	}
}

func TestAnalyzer_ProgressOutput(t *testing.T) {
	ds := testDataset(t)
	var out bytes.Buffer

	_, err := newTestAnalyzer(&out).Run(context.Background(), ds)

	require.NoError(t, err)
	text := out.String()
	assert.Contains(t, text, "Series p1:\n")
	assert.Contains(t, text, "Series p2:\n")
	assert.Contains(t, text, "  Changepoint 1: Time = ")
	assert.Contains(t, text, "t-statistic = ")
	assert.Contains(t, text, "p-value = ")
}

func TestAnalyzer_Detect(t *testing.T) {
	ds := testDataset(t)
	var out bytes.Buffer
	analyzer := newTestAnalyzer(&out)

	all, err := analyzer.Detect(ds)

	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, cps := range all {
		assert.Len(t, cps, 3)
	}

	// detection used for plotting matches the analyzed changepoints
	records, err := analyzer.Run(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, ds.Time[all[0][0]], records[0].Time)
}

func TestAnalyzer_DetectionFailurePropagates(t *testing.T) {
	ds := &domain.Dataset{
		Time:      []float64{1, 2, 3, 4},
		Scenarios: []domain.Scenario{{Name: "tiny", Values: []float64{1, 2, 3, 4}}},
	}
	var out bytes.Buffer

	_, err := newTestAnalyzer(&out).Run(context.Background(), ds)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "series p1")
}
