package ingest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook into a grid. Numeric
// cells come through as float64 so the coercer can recognize date and
// time serials; everything else stays a string.
func ReadXLSX(r io.Reader) ([][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	grid := make([][]any, len(rows))
	for i, cells := range rows {
		row := make([]any, len(cells))
		for j, raw := range cells {
			row[j] = cellValue(f, sheet, j, i, raw)
		}
		grid[i] = row
	}

	return grid, nil
}

// cellValue maps a raw cell to the grid representation, consulting the
// stored cell type so numeric-looking text (heat IDs) is not mistaken
// for a serial.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return nil
	}

	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, name)
	if err != nil {
		return raw
	}

	if cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeDate || cellType == excelize.CellTypeUnset {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n
		}
	}
	return raw
}
