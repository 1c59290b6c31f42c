package entities

// RawRow represents one canonical input record produced by the row
// parser. Time strings are normalized to fixed HH:MM width so lexical
// comparison matches chronological comparison. Immutable once produced.
type RawRow struct {
	DateStr    string
	HeatID     string
	SteelGrade string
	Unit       string
	StartStr   string
	EndStr     string
	SeqNum     *int
	RawIndex   int // 1-based position in the original sheet, header included
}
