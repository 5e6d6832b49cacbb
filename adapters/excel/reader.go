package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
	"pitcheck/ports"
)

// Required observation table columns, matched case-insensitively
const (
	colResponse  = "response"
	colCovariate = "covariate"
	colGroup     = "group"
)

// DataReader reads observation tables from Excel and CSV files
type DataReader struct{}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader() ports.ObservationReader {
	return &DataReader{}
}

// ReadObservations reads the observation table into structured form, picking
// the parser from the file extension. Fails fast on missing columns or
// malformed rows rather than proceeding with partial data.
func (r *DataReader) ReadObservations(path string) ([]pit.Observation, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("observation file not found: %s", path)
	}

	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return r.readCSV(path)
	}
	return r.readExcel(path)
}

func (r *DataReader) readCSV(path string) ([]pit.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return processRows(rows)
}

func (r *DataReader) readExcel(path string) ([]pit.Observation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	return processRows(rows)
}

func processRows(rows [][]string) ([]pit.Observation, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("observation file must have a header row and at least one data row")
	}

	respIdx, covIdx, groupIdx := -1, -1, -1
	for i, name := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colResponse:
			respIdx = i
		case colCovariate:
			covIdx = i
		case colGroup:
			groupIdx = i
		}
	}
	if respIdx < 0 || covIdx < 0 || groupIdx < 0 {
		return nil, fmt.Errorf("observation file must have %q, %q and %q columns, got header %v",
			colResponse, colCovariate, colGroup, rows[0])
	}

	observations := make([]pit.Observation, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) <= respIdx || len(row) <= covIdx || len(row) <= groupIdx {
			return nil, fmt.Errorf("row %d has %d columns, expected at least %d",
				rowNum+2, len(row), max3(respIdx, covIdx, groupIdx)+1)
		}

		response, err := strconv.ParseFloat(strings.TrimSpace(row[respIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid response %q: %w", rowNum+2, row[respIdx], err)
		}
		covariate, err := strconv.ParseFloat(strings.TrimSpace(row[covIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid covariate %q: %w", rowNum+2, row[covIdx], err)
		}
		group := strings.TrimSpace(row[groupIdx])
		if group == "" {
			return nil, fmt.Errorf("row %d: empty group label", rowNum+2)
		}

		observations = append(observations, pit.Observation{
			Response:  response,
			Covariate: covariate,
			Group:     core.GroupLabel(group),
		})
	}

	if len(observations) == 0 {
		return nil, fmt.Errorf("observation file contains no data rows")
	}
	return observations, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
