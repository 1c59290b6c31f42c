package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV reads comma-separated content into a grid. Cells stay
// strings; the coercer downstream handles trimming and shape. Ragged
// rows are accepted since production exports frequently omit trailing
// cells.
func ReadCSV(r io.Reader) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	grid := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(record))
		for j, cell := range record {
			row[j] = cell
		}
		grid[i] = row
	}

	return grid, nil
}
