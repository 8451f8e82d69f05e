// Package results persists analysis artifacts to the results directory.
package results

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/de-tools/carbon-atlas/pkg/models/store"
)

const (
	EvaluationsFile = "changepoint_results.csv"
	SummaryFile     = "changepoint_summary.csv"
	OverviewFigure  = "all_series_plot.png"
	GridFigure      = "changepoint_detection_results.png"
)

// Store writes and reads result CSVs under a single directory.
type Store struct {
	dir string
}

// NewStore creates the results directory if absent and returns a store bound
// to it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the absolute location of a named artifact inside the results
// directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// WriteEvaluations writes the per-changepoint records CSV and returns its path.
func (s *Store) WriteEvaluations(rows []store.EvaluationRow) (string, error) {
	path := s.Path(EvaluationsFile)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, store.EvaluationColumns)
	for _, row := range rows {
		records = append(records, []string{
			row.Series,
			strconv.Itoa(row.Changepoint),
			formatCell(row.Time),
			formatCell(row.Concentration),
			formatCell(row.Statistic),
			formatCell(row.PValue),
		})
	}
	return path, writeCSV(path, records)
}

// ReadEvaluations reads the records CSV back. Empty numeric cells restore to
// NaN, so write-then-read round-trips.
func (s *Store) ReadEvaluations() ([]store.EvaluationRow, error) {
	f, err := os.Open(s.Path(EvaluationsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", EvaluationsFile)
	}

	rows := make([]store.EvaluationRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(store.EvaluationColumns) {
			return nil, fmt.Errorf("unexpected record length %d in %s", len(rec), EvaluationsFile)
		}
		cp, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("invalid changepoint ordinal %q: %w", rec[1], err)
		}
		row := store.EvaluationRow{Series: rec[0], Changepoint: cp}
		if row.Time, err = parseCell(rec[2]); err != nil {
			return nil, err
		}
		if row.Concentration, err = parseCell(rec[3]); err != nil {
			return nil, err
		}
		if row.Statistic, err = parseCell(rec[4]); err != nil {
			return nil, err
		}
		if row.PValue, err = parseCell(rec[5]); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteSummary writes the per-scenario summary CSV and returns its path.
func (s *Store) WriteSummary(rows []store.SummaryRow) (string, error) {
	path := s.Path(SummaryFile)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, store.SummaryColumns)
	for _, row := range rows {
		records = append(records, []string{
			row.Series,
			formatCell(row.TimeMean), formatCell(row.TimeStd),
			formatCell(row.ConcentrationMean), formatCell(row.ConcentrationStd),
			formatCell(row.StatisticMean), formatCell(row.StatisticStd),
			formatCell(row.PValueMean), formatCell(row.PValueStd),
		})
	}
	return path, writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	writer.Flush()
	return writer.Error()
}

// formatCell writes NaN as an empty cell, the convention the downstream
// notebooks expect.
func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseCell(cell string) (float64, error) {
	if cell == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric cell %q: %w", cell, err)
	}
	return v, nil
}
