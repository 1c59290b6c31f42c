package derive

import (
	"testing"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

func op(unit string, group entities.StageGroup, order int, start, end string) entities.Operation {
	s, err := time.Parse("2006-01-02 15:04", start)
	if err != nil {
		panic(err)
	}
	e, err := time.Parse("2006-01-02 15:04", end)
	if err != nil {
		panic(err)
	}
	return entities.Operation{Unit: unit, Group: group, SequenceOrder: order, StartTime: s, EndTime: e}
}

func TestSortByStart(t *testing.T) {
	ops := []entities.Operation{
		op("TSC1", entities.GroupCaster, 4, "2024-03-09 11:00", "2024-03-09 12:00"),
		op("BOF1", entities.GroupBOF, 2, "2024-03-09 08:00", "2024-03-09 09:00"),
		op("LF1", entities.GroupLF, 3, "2024-03-09 09:30", "2024-03-09 10:30"),
	}

	sorted := SortByStart(ops)
	expected := []string{"BOF1", "LF1", "TSC1"}
	for i, unit := range expected {
		if sorted[i].Unit != unit {
			t.Errorf("Position %d: expected %s, got %s", i, unit, sorted[i].Unit)
		}
	}
	if ops[0].Unit != "TSC1" {
		t.Error("Expected input slice to be left untouched")
	}
}

func TestSortByStart_TieBreaks(t *testing.T) {
	ops := []entities.Operation{
		op("LF1", entities.GroupLF, 3, "2024-03-09 08:00", "2024-03-09 09:00"),
		op("BOF1", entities.GroupBOF, 2, "2024-03-09 08:00", "2024-03-09 08:45"),
	}

	sorted := SortByStart(ops)
	if sorted[0].Unit != "BOF1" {
		t.Errorf("Expected equal starts ordered by sequence order, got %s first", sorted[0].Unit)
	}
}

func TestBuildHeat(t *testing.T) {
	ops := []entities.Operation{
		op("BOF1", entities.GroupBOF, 2, "2024-03-09 08:00", "2024-03-09 09:00"),
		op("LF1", entities.GroupLF, 3, "2024-03-09 09:30", "2024-03-09 10:30"),
		op("TSC1", entities.GroupCaster, 4, "2024-03-09 11:00", "2024-03-09 12:00"),
	}

	heat := BuildHeat("D7090", "SPHC", ops)

	if heat.HeatID != "D7090" || heat.SteelGrade != "SPHC" {
		t.Errorf("Unexpected identity fields: %s %s", heat.HeatID, heat.SteelGrade)
	}
	expectedIdle := []int{0, 30, 30}
	for i, want := range expectedIdle {
		if heat.Operations[i].IdleTimeMinutes != want {
			t.Errorf("Operation %d: expected idle %d, got %d", i, want, heat.Operations[i].IdleTimeMinutes)
		}
		if heat.Operations[i].DurationMinutes != 60 {
			t.Errorf("Operation %d: expected duration 60, got %d", i, heat.Operations[i].DurationMinutes)
		}
	}
	if heat.TotalDurationMinutes != 180 {
		t.Errorf("Expected total duration 180, got %d", heat.TotalDurationMinutes)
	}
	if heat.TotalIdleMinutes != 60 {
		t.Errorf("Expected total idle 60, got %d", heat.TotalIdleMinutes)
	}
	if !heat.IsComplete || heat.CastingMachine != "TSC1" {
		t.Errorf("Expected complete heat cast on TSC1, got complete=%v machine=%s",
			heat.IsComplete, heat.CastingMachine)
	}
	if heat.SequenceInCaster != nil {
		t.Error("Expected caster sequence unset before the cross-heat pass")
	}
}

func TestBuildHeat_NoCaster(t *testing.T) {
	ops := []entities.Operation{
		op("BOF1", entities.GroupBOF, 2, "2024-03-09 08:00", "2024-03-09 09:00"),
	}

	heat := BuildHeat("D7091", "SPHC", ops)
	if heat.IsComplete {
		t.Error("Expected a heat that never reached a caster to be incomplete")
	}
	if heat.CastingMachine != "" {
		t.Errorf("Expected no casting machine, got %s", heat.CastingMachine)
	}
}

func TestProductionDay(t *testing.T) {
	testCases := []struct {
		name     string
		at       string
		expected string
	}{
		{"just before window opens", "2024-03-10 07:59", "2024-03-09"},
		{"at window open", "2024-03-10 08:00", "2024-03-10"},
		{"midday", "2024-03-10 14:00", "2024-03-10"},
		{"after midnight", "2024-03-11 01:30", "2024-03-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			at, err := time.Parse("2006-01-02 15:04", tc.at)
			if err != nil {
				t.Fatal(err)
			}
			if got := ProductionDay(at, 8).Format("2006-01-02"); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}
