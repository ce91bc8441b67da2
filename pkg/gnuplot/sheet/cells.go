// Package sheet reads numeric data for gnuplot out of xlsx workbooks.
package sheet

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot/array"
	"github.com/npillmayer/schuko/tracing"
	"github.com/xuri/excelize/v2"
)

// tracer traces with key 'gnuplot.sheet'
func tracer() tracing.Trace {
	return tracing.Select("gnuplot.sheet")
}

// Load opens the workbook at path and returns the numeric rows of a sheet
// as a rank-2 array. An empty sheet name selects the first sheet.
func Load(path, sheetName string) (*array.Array, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
		}
		sheetName = sheets[0]
	}

	rows, err := ReadRows(f, sheetName)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s!%s: %d numeric rows", filepath.Base(path), sheetName, len(rows))
	a, err := array.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
	}
	return a, nil
}

// ReadRows extracts the numeric rows of a sheet. Only the columns of the
// block found by DetectBlock are read, so data need not start in column A.
// Rows holding any non-numeric cell inside the block, such as a header row,
// are skipped, as are empty rows.
func ReadRows(f *excelize.File, sheetName string) ([][]float64, error) {
	block, err := DetectBlock(f, sheetName)
	if err != nil || block == "" {
		return nil, err
	}
	firstCol, lastCol, err := blockColumns(block)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result [][]float64
	for rowIdx, row := range rows {
		row = trimTrailingEmpty(cropRow(row, firstCol, lastCol))
		if len(row) == 0 {
			continue
		}
		values := make([]float64, 0, len(row))
		numeric := true
		for _, cellValue := range row {
			v, ok := parseValue(cellValue)
			if !ok {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if !numeric {
			tracer().Debugf("skipping non-numeric row %d of sheet %q", rowIdx+1, sheetName)
			continue
		}
		result = append(result, values)
	}

	return result, nil
}

// cropRow returns the cells of row in the 0-based columns first..last.
func cropRow(row []string, first, last int) []string {
	if first >= len(row) {
		return nil
	}
	if last+1 < len(row) {
		row = row[:last+1]
	}
	return row[first:]
}

func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}

// parseValue attempts to parse a cell as a number. Empty cells inside a
// row are not numbers.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
