package rows

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// timePattern is the accepted wall-clock shape: 1-2 digit hours, a
// colon, 2-digit minutes. Range checking of the digits happens in the
// temporal resolver.
var timePattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParsedRows is the row parser output: surviving canonical rows in
// original order plus the row-level warnings accumulated on the way.
type ParsedRows struct {
	Rows     []entities.RawRow
	Warnings []entities.ValidationError
}

// Parser applies header normalization and cell coercion to a raw grid.
type Parser struct{}

// NewParser creates a row parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse converts a 2D grid (first row headers) into canonical rows.
// Placeholder and malformed rows are dropped here with classified
// warnings; rows where every cell is empty vanish silently. Structural
// problems (missing required columns, no data rows) abort with an
// error instead of being reported per row.
func (p *Parser) Parse(grid [][]any) (*ParsedRows, error) {
	if len(grid) < 2 {
		return nil, fmt.Errorf("input needs a header row and at least one data row, got %d rows", len(grid))
	}

	columns, err := MapHeaders(grid[0])
	if err != nil {
		return nil, err
	}

	result := &ParsedRows{}

	for i, cells := range grid[1:] {
		rawIndex := i + 2 // 1-based, header is row 1

		values := make(map[Field]string)
		empty := true
		for col, field := range columns {
			var cell any
			if col < len(cells) {
				cell = cells[col]
			}
			coerced := CoerceCell(cell)
			values[field] = coerced
			if coerced != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		row := entities.RawRow{
			DateStr:    values[FieldDate],
			HeatID:     values[FieldHeatID],
			SteelGrade: values[FieldSteelGrade],
			Unit:       values[FieldUnit],
			StartStr:   values[FieldStart],
			EndStr:     values[FieldEnd],
			RawIndex:   rawIndex,
		}

		if row.HeatID == "" {
			result.Warnings = append(result.Warnings, entities.ValidationError{
				Kind:     entities.KindMissing,
				Message:  "row has no heat identifier",
				RawIndex: rawIndex,
			})
			continue
		}

		if isPlaceholder(row) {
			result.Warnings = append(result.Warnings, entities.ValidationError{
				HeatID:   row.HeatID,
				Kind:     entities.KindPlaceholder,
				Message:  "row is a non-operation placeholder",
				Unit:     row.Unit,
				RawIndex: rawIndex,
			})
			continue
		}

		start, ok := normalizeTime(row.StartStr)
		if !ok {
			result.Warnings = append(result.Warnings, entities.ValidationError{
				HeatID:   row.HeatID,
				Kind:     entities.KindFormat,
				Message:  fmt.Sprintf("start time %q is not in H:MM form", row.StartStr),
				Unit:     row.Unit,
				RawIndex: rawIndex,
			})
			continue
		}
		end, ok := normalizeTime(row.EndStr)
		if !ok {
			result.Warnings = append(result.Warnings, entities.ValidationError{
				HeatID:   row.HeatID,
				Kind:     entities.KindFormat,
				Message:  fmt.Sprintf("end time %q is not in H:MM form", row.EndStr),
				Unit:     row.Unit,
				RawIndex: rawIndex,
			})
			continue
		}
		row.StartStr = start
		row.EndStr = end

		if seqStr := values[FieldSeqNum]; seqStr != "" {
			if n, err := strconv.Atoi(seqStr); err == nil {
				row.SeqNum = &n
			} else if f, err := strconv.ParseFloat(seqStr, 64); err == nil {
				n := int(f)
				row.SeqNum = &n
			}
		}

		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// isPlaceholder recognizes rows that mark an unused slot rather than a
// real operation: unit "0", or both times at midnight.
func isPlaceholder(row entities.RawRow) bool {
	if row.Unit == "0" {
		return true
	}
	return isMidnight(row.StartStr) && isMidnight(row.EndStr)
}

func isMidnight(s string) bool {
	return s == "00:00" || s == "0:00"
}

// normalizeTime pads a present H:MM string to fixed HH:MM width. An
// empty string passes through untouched; the temporal resolver decides
// whether absence is fatal.
func normalizeTime(s string) (string, bool) {
	if s == "" {
		return "", true
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	if len(m[1]) == 1 {
		return "0" + s, true
	}
	return s, true
}
