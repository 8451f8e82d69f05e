package results

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)
	return s
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")

	_, err := NewStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_EvaluationsRoundTrip(t *testing.T) {
	s := setupStore(t)
	rows := []store.EvaluationRow{
		{Series: "p1", Changepoint: 1, Time: 0.312, Concentration: 104.25, Statistic: -12.375, PValue: 0.00031},
		{Series: "p1", Changepoint: 2, Time: 15.7, Concentration: 230.125, Statistic: -3.5, PValue: 0.042},
		{Series: "p2", Changepoint: 1, Time: 1e-3, Concentration: 88, Statistic: math.NaN(), PValue: math.NaN()},
	}

	path, err := s.WriteEvaluations(rows)
	require.NoError(t, err)
	assert.FileExists(t, path)

	got, err := s.ReadEvaluations()
	require.NoError(t, err)
	require.Len(t, got, len(rows))

	for i, row := range rows {
		assert.Equal(t, row.Series, got[i].Series)
		assert.Equal(t, row.Changepoint, got[i].Changepoint)
		assert.Equal(t, row.Time, got[i].Time)
		assert.Equal(t, row.Concentration, got[i].Concentration)
		if math.IsNaN(row.Statistic) {
			assert.True(t, math.IsNaN(got[i].Statistic))
			assert.True(t, math.IsNaN(got[i].PValue))
		} else {
			assert.Equal(t, row.Statistic, got[i].Statistic)
			assert.Equal(t, row.PValue, got[i].PValue)
		}
	}
}

func TestStore_EvaluationsHeader(t *testing.T) {
	s := setupStore(t)

	path, err := s.WriteEvaluations(nil)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Series,Changepoint,Time,CO2_Concentration,t-statistic,p-value",
		strings.SplitN(string(content), "\n", 2)[0])
}

func TestStore_WriteSummary(t *testing.T) {
	s := setupStore(t)
	rows := []store.SummaryRow{
		{
			Series:   "p1",
			TimeMean: 42, TimeStd: math.NaN(),
			ConcentrationMean: 100, ConcentrationStd: math.NaN(),
			StatisticMean: -2.5, StatisticStd: math.NaN(),
			PValueMean: 0.03, PValueStd: math.NaN(),
		},
	}

	path, err := s.WriteSummary(rows)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(store.SummaryColumns, ","), lines[0])
	// NaN std columns serialize as empty cells
	assert.Equal(t, "p1,42,,100,,-2.5,,0.03,", lines[1])
}

func TestStore_ReadEvaluationsMissingFile(t *testing.T) {
	s := setupStore(t)
	_, err := s.ReadEvaluations()
	assert.Error(t, err)
}
