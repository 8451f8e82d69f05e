// Package dataset loads scenario datasets from delimited files.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// Store reads input files into datasets.
type Store struct{}

// NewStore creates a dataset store.
func NewStore() *Store {
	return &Store{}
}

// Load reads a CSV file with a `t` timestamp column; every other column is
// one scenario series, left-to-right order preserved.
func (s *Store) Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := s.LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", path, err)
	}
	return ds, nil
}

// LoadFromReader parses CSV dataset content. Malformed input is an error;
// nothing is skipped or repaired.
func (s *Store) LoadFromReader(r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("dataset is empty")
	}
	if err != nil {
		return nil, err
	}

	timeIdx := -1
	for i, name := range header {
		if name == "t" {
			timeIdx = i
			break
		}
	}
	if timeIdx == -1 {
		return nil, errors.New(`column "t" not found`)
	}

	scenarios := make([]domain.Scenario, 0, len(header)-1)
	colToScenario := make(map[int]int, len(header)-1)
	for i, name := range header {
		if i == timeIdx {
			continue
		}
		colToScenario[i] = len(scenarios)
		scenarios = append(scenarios, domain.Scenario{Name: name})
	}

	var timeVec []float64
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: invalid numeric value %q", row, header[i], cell)
			}
			if i == timeIdx {
				timeVec = append(timeVec, v)
			} else {
				sc := colToScenario[i]
				scenarios[sc].Values = append(scenarios[sc].Values, v)
			}
		}
	}

	if len(timeVec) == 0 {
		return nil, errors.New("dataset has no data rows")
	}

	return &domain.Dataset{Time: timeVec, Scenarios: scenarios}, nil
}
