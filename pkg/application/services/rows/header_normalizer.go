// Package rows turns a raw spreadsheet grid into canonical RawRow
// records: header normalization, cell value coercion and row-level
// classification of placeholder or malformed rows.
package rows

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field is a canonical column name in the input contract
type Field string

const (
	FieldHeatID     Field = "heatId"
	FieldSteelGrade Field = "steelGrade"
	FieldUnit       Field = "unit"
	FieldStart      Field = "startStr"
	FieldEnd        Field = "endStr"
	FieldDate       Field = "dateStr"
	FieldSeqNum     Field = "seqNum"
)

// requiredFields must all be present in the header row for a parse to
// proceed at all.
var requiredFields = []Field{FieldHeatID, FieldSteelGrade, FieldUnit, FieldStart, FieldEnd}

// headerAliases maps normalized header keys to canonical fields. The
// table covers the English and Vietnamese spellings seen in production
// sheets.
var headerAliases = map[string]Field{
	"heatid": FieldHeatID,
	"methep": FieldHeatID, // mẻ thép
	"some":   FieldHeatID, // số mẻ

	"steelgrade": FieldSteelGrade,
	"macthep":    FieldSteelGrade, // mác thép

	"unit":     FieldUnit,
	"congdoan": FieldUnit, // công đoạn
	"thietbi":  FieldUnit, // thiết bị

	"starttime": FieldStart,
	"start":     FieldStart,
	"batdau":    FieldStart, // bắt đầu
	"giobatdau": FieldStart, // giờ bắt đầu

	"endtime":    FieldEnd,
	"end":        FieldEnd,
	"ketthuc":    FieldEnd, // kết thúc
	"gioketthuc": FieldEnd, // giờ kết thúc

	"date":        FieldDate,
	"ngay":        FieldDate, // ngày
	"ngaysanxuat": FieldDate, // ngày sản xuất

	"sequencenumber": FieldSeqNum,
	"seq":            FieldSeqNum,
	"stt":            FieldSeqNum, // số thứ tự
}

// diacriticStripper decomposes accented Latin characters and removes
// the combining marks, so "mác thép" and "mac thep" normalize alike.
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader produces the canonical lookup key for a raw header:
// lower-cased, diacritics stripped (đ mapped to d explicitly since it
// does not decompose), whitespace and underscores removed.
func NormalizeHeader(header string) string {
	lower := strings.ToLower(strings.TrimSpace(header))
	lower = strings.ReplaceAll(lower, "đ", "d")

	stripped, _, err := transform.String(diacriticStripper, lower)
	if err != nil {
		stripped = lower
	}

	var b strings.Builder
	for _, r := range stripped {
		if unicode.IsSpace(r) || r == '_' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MapHeaders resolves a header row to a mapping from column index to
// canonical field. Unrecognized headers are dropped silently. A missing
// required field aborts the whole parse with a single configuration
// error naming every absent canonical field.
func MapHeaders(headerRow []any) (map[int]Field, error) {
	columns := make(map[int]Field)
	seen := make(map[Field]bool)

	for i, cell := range headerRow {
		header, ok := cell.(string)
		if !ok {
			if cell == nil {
				continue
			}
			header = fmt.Sprint(cell)
		}

		field, ok := headerAliases[NormalizeHeader(header)]
		if !ok {
			continue
		}
		// First matching column wins to keep mapping deterministic
		if seen[field] {
			continue
		}
		columns[i] = field
		seen[field] = true
	}

	var missing []string
	for _, f := range requiredFields {
		if !seen[f] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf(
			"required columns not found in header: %s",
			strings.Join(missing, ", "),
		)
	}

	return columns, nil
}
