package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DetectBlock returns the cell range (e.g. "A2:C10") bounding the numeric
// cells of a sheet, or "" when the sheet holds no numbers.
func DetectBlock(f *excelize.File, sheetName string) (string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return "", err
	}

	minRow, maxRow, minCol, maxCol := findNumericBounds(rows)
	if minRow < 0 {
		return "", nil
	}

	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return "", err
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", startCell, endCell), nil
}

// findNumericBounds finds the bounding box of numeric cells.
func findNumericBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if _, ok := parseValue(cell); !ok {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// blockColumns returns the 0-based first and last column of a range such
// as "B2:C10".
func blockColumns(block string) (first, last int, err error) {
	start, end, ok := strings.Cut(block, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid block %q", block)
	}
	firstCol, _, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, err
	}
	lastCol, _, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, err
	}
	return firstCol - 1, lastCol - 1, nil
}
