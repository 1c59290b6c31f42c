// Package temporal groups canonical rows into heats and resolves their
// time-of-day strings into absolute timestamps, applying the overnight
// rollover heuristic.
package temporal

import (
	"sort"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// HeatGroup holds one heat's rows in original input order.
type HeatGroup struct {
	HeatID string
	Rows   []entities.RawRow
}

// Group buckets rows by heat identifier. Groups come out in
// first-appearance order and rows keep their original order within a
// group, so downstream tie-breaking stays deterministic.
func Group(rowList []entities.RawRow) []HeatGroup {
	index := make(map[string]int)
	var groups []HeatGroup

	for _, row := range rowList {
		i, ok := index[row.HeatID]
		if !ok {
			i = len(groups)
			index[row.HeatID] = i
			groups = append(groups, HeatGroup{HeatID: row.HeatID})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}

	return groups
}

// SortForParsing orders a heat's rows for the first resolution pass:
// explicit sequence numbers when both rows carry one, else lexical
// comparison of the fixed-width HH:MM start strings, else original
// position. This order only seeds the overnight heuristic; the
// authoritative order is re-established from resolved start times.
func SortForParsing(rowList []entities.RawRow) []entities.RawRow {
	sorted := make([]entities.RawRow, len(rowList))
	copy(sorted, rowList)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.SeqNum != nil && b.SeqNum != nil && *a.SeqNum != *b.SeqNum {
			return *a.SeqNum < *b.SeqNum
		}
		if a.StartStr != b.StartStr {
			return a.StartStr < b.StartStr
		}
		return a.RawIndex < b.RawIndex
	})

	return sorted
}
