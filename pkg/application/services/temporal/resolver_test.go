package temporal

import (
	"testing"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

var testToday = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

func newTestResolver() *Resolver {
	return NewResolver(time.UTC, testToday)
}

func row(unit, date, start, end string, rawIndex int) entities.RawRow {
	return entities.RawRow{
		HeatID:   "D7090",
		Unit:     unit,
		DateStr:  date,
		StartStr: start,
		EndStr:   end,
		RawIndex: rawIndex,
	}
}

func TestResolveHeat_FullRoute(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("BOF1", "2024-03-09", "08:00", "09:00", 2),
		row("LF1", "", "09:30", "10:30", 3),
		row("TSC1", "", "11:00", "12:00", 4),
	}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatalf("Expected clean resolution, got errors %v", res.Errors)
	}
	if len(res.Ops) != 3 {
		t.Fatalf("Expected 3 operations, got %d", len(res.Ops))
	}

	expectedStart := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	if !res.Ops[0].StartTime.Equal(expectedStart) {
		t.Errorf("Expected start %v, got %v", expectedStart, res.Ops[0].StartTime)
	}
	// Dateless rows inherit the heat's base date.
	expectedLast := time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC)
	if !res.Ops[2].StartTime.Equal(expectedLast) {
		t.Errorf("Expected start %v, got %v", expectedLast, res.Ops[2].StartTime)
	}
}

func TestResolveHeat_OvernightEnd(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("TSC1", "2024-03-09", "23:00", "01:00", 2),
	}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatalf("Expected clean resolution, got errors %v", res.Errors)
	}

	op := res.Ops[0]
	if got := op.EndTime.Sub(op.StartTime); got != 2*time.Hour {
		t.Errorf("Expected a 2h casting window across midnight, got %v", got)
	}
	if op.EndTime.Day() != 10 {
		t.Errorf("Expected end to land on the next day, got %v", op.EndTime)
	}
}

func TestResolveHeat_OvernightStart(t *testing.T) {
	seq1, seq2 := 1, 2
	first := row("BOF1", "2024-03-09", "22:00", "23:30", 2)
	first.SeqNum = &seq1
	second := row("LF1", "", "00:15", "01:00", 3)
	second.SeqNum = &seq2
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{first, second}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatalf("Expected clean resolution, got errors %v", res.Errors)
	}

	refining := res.Ops[1]
	expected := time.Date(2024, 3, 10, 0, 15, 0, 0, time.UTC)
	if !refining.StartTime.Equal(expected) {
		t.Errorf("Expected start rolled to %v, got %v", expected, refining.StartTime)
	}
}

func TestResolveHeat_NoDateUsesToday(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("BOF1", "", "08:00", "09:00", 2),
	}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatalf("Expected clean resolution, got errors %v", res.Errors)
	}

	expected := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	if !res.Ops[0].StartTime.Equal(expected) {
		t.Errorf("Expected fallback to injected today, got %v", res.Ops[0].StartTime)
	}
}

func TestResolveHeat_DayFirstDate(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("BOF1", "09/03/2024", "08:00", "09:00", 2),
	}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatalf("Expected clean resolution, got errors %v", res.Errors)
	}
	if res.Ops[0].StartTime.Month() != time.March || res.Ops[0].StartTime.Day() != 9 {
		t.Errorf("Expected 09/03/2024 read day-first, got %v", res.Ops[0].StartTime)
	}
}

func TestResolveHeat_UnknownUnitIsAdvisory(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("BOF1", "2024-03-09", "08:00", "09:00", 2),
		row("XYZ9", "", "09:30", "10:00", 3),
		row("TSC1", "", "10:30", "11:30", 4),
	}}

	res := newTestResolver().ResolveHeat(group)
	if res.Fatal {
		t.Fatal("Expected unknown unit to leave the heat alive")
	}
	if len(res.Ops) != 2 {
		t.Errorf("Expected the unknown unit's row excluded, got %d ops", len(res.Ops))
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != entities.KindUnit {
		t.Errorf("Expected one UNIT advisory, got %v", res.Errors)
	}
}

func TestResolveHeat_FatalRows(t *testing.T) {
	testCases := []struct {
		name string
		rows []entities.RawRow
		kind entities.ErrorKind
	}{
		{"hour out of range", []entities.RawRow{row("BOF1", "2024-03-09", "25:00", "26:00", 2)}, entities.KindFormat},
		{"minute out of range", []entities.RawRow{row("BOF1", "2024-03-09", "08:61", "09:00", 2)}, entities.KindFormat},
		{"bad date cell", []entities.RawRow{row("BOF1", "garbage", "08:00", "09:00", 2)}, entities.KindFormat},
		{"zero duration", []entities.RawRow{row("BOF1", "2024-03-09", "08:00", "08:00", 2)}, entities.KindTime},
		{"missing unit", []entities.RawRow{row("", "2024-03-09", "08:00", "09:00", 2)}, entities.KindMissing},
		{"missing end time", []entities.RawRow{row("BOF1", "2024-03-09", "08:00", "", 2)}, entities.KindMissing},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := newTestResolver().ResolveHeat(HeatGroup{HeatID: "D7090", Rows: tc.rows})
			if !res.Fatal {
				t.Fatal("Expected the heat to be marked fatal")
			}
			if len(res.Errors) != 1 || res.Errors[0].Kind != tc.kind {
				t.Errorf("Expected one %s error, got %v", tc.kind, res.Errors)
			}
		})
	}
}

func TestResolveHeat_SiblingsStillClassified(t *testing.T) {
	group := HeatGroup{HeatID: "D7090", Rows: []entities.RawRow{
		row("BOF1", "2024-03-09", "08:00", "08:00", 2),
		row("LF1", "", "99:00", "10:00", 3),
	}}

	res := newTestResolver().ResolveHeat(group)
	if !res.Fatal {
		t.Fatal("Expected the heat to be marked fatal")
	}
	if len(res.Errors) != 2 {
		t.Fatalf("Expected both rows classified, got %v", res.Errors)
	}
}
