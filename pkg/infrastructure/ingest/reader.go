// Package ingest reads spreadsheet and CSV files into the raw grid the
// pipeline consumes: an ordered sequence of rows whose cells are
// string, float64, time.Time or nil. Only the first sheet of a
// workbook is considered.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile loads a grid from disk, dispatching on the file extension.
func ReadFile(path string) ([][]any, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(file)
	case ".xlsx", ".xlsm":
		return ReadXLSX(file)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv, .xlsx or .xlsm)", filepath.Ext(path))
	}
}
