package orchestration

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hqsteel/heatline/pkg/application/dto"
	"github.com/hqsteel/heatline/pkg/domain/entities"
)

func testOptions() Options {
	return Options{
		AllowOverlap: false,
		DayStartHour: 8,
		Location:     time.UTC,
		Today:        time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
	}
}

func gridHeader() []any {
	return []any{"date", "heat_id", "steel_grade", "unit", "start_time", "end_time"}
}

func fatalKinds(result *dto.ParseResult) []entities.ErrorKind {
	var kinds []entities.ErrorKind
	for _, e := range result.Errors {
		if e.IsFatal() {
			kinds = append(kinds, e.Kind)
		}
	}
	return kinds
}

func TestRun_FullScenario(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7090", "SPHC", "BOF1", "08:00", "09:00"},
		{"", "D7090", "", "LF1", "09:30", "10:30"},
		{"", "D7090", "", "TSC1", "11:00", "12:00"},
	}

	result, err := New(testOptions()).Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.RunID == "" {
		t.Error("Expected a run identifier")
	}
	if len(result.Errors) != 0 {
		t.Fatalf("Expected no errors, got %v", result.Errors)
	}
	if len(result.ValidHeats) != 1 {
		t.Fatalf("Expected 1 valid heat, got %d", len(result.ValidHeats))
	}

	heat := result.ValidHeats[0]
	if heat.SteelGrade != "SPHC" {
		t.Errorf("Expected grade inherited from the first graded row, got %q", heat.SteelGrade)
	}
	if heat.TotalDurationMinutes != 180 || heat.TotalIdleMinutes != 60 {
		t.Errorf("Expected totals 180/60, got %d/%d",
			heat.TotalDurationMinutes, heat.TotalIdleMinutes)
	}
	if !heat.IsComplete || heat.CastingMachine != "TSC1" {
		t.Errorf("Expected complete heat cast on TSC1, got %+v", heat)
	}
	if heat.SequenceInCaster == nil || *heat.SequenceInCaster != 1 {
		t.Errorf("Expected caster sequence 1, got %v", heat.SequenceInCaster)
	}
}

func TestRun_FatalHeatDroppedWholly(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7090", "SPHC", "BOF1", "08:00", "09:00"},
		{"", "D7090", "", "LF1", "09:30", ""}, // missing end dooms the heat
		{"2024-03-09", "D7091", "SPHC", "BOF2", "08:15", "09:15"},
	}

	result, err := New(testOptions()).Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.ValidHeats) != 1 || result.ValidHeats[0].HeatID != "D7091" {
		t.Fatalf("Expected only D7091 to survive, got %+v", result.ValidHeats)
	}
	kinds := fatalKinds(result)
	if len(kinds) != 1 || kinds[0] != entities.KindMissing {
		t.Errorf("Expected one MISSING error, got %v", result.Errors)
	}
}

func TestRun_RoutingViolationDropsHeat(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7090", "SPHC", "LF1", "09:30", "10:30"},
		{"", "D7090", "", "TSC1", "11:00", "12:00"},
	}

	result, err := New(testOptions()).Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.ValidHeats) != 0 {
		t.Fatalf("Expected refining without a converter to drop the heat, got %+v", result.ValidHeats)
	}
	kinds := fatalKinds(result)
	if len(kinds) != 1 || kinds[0] != entities.KindRouting {
		t.Errorf("Expected one ROUTING error, got %v", result.Errors)
	}
}

func TestRun_AdvisoriesKeepHeatAlive(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7090", "SPHC", "BOF1", "08:00", "09:00"},
		{"", "D7090", "", "XYZ9", "09:10", "09:20"},
		{"", "D7090", "", "TSC1", "11:00", "12:00"},
	}

	result, err := New(testOptions()).Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.ValidHeats) != 1 {
		t.Fatalf("Expected the heat to survive an unknown unit, got %d heats (errors %v)",
			len(result.ValidHeats), result.Errors)
	}
	if len(result.ValidHeats[0].Operations) != 2 {
		t.Errorf("Expected the unknown unit's row excluded, got %d ops",
			len(result.ValidHeats[0].Operations))
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != entities.KindUnit {
		t.Errorf("Expected one UNIT advisory, got %v", result.Errors)
	}
}

func TestRun_AllRowsAdvisory(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7090", "SPHC", "XYZ9", "08:00", "09:00"},
	}

	result, err := New(testOptions()).Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.ValidHeats) != 0 {
		t.Errorf("Expected no heat when every row is excluded, got %+v", result.ValidHeats)
	}
}

func TestRun_Deterministic(t *testing.T) {
	grid := [][]any{
		gridHeader(),
		{"2024-03-09", "D7091", "SPHC", "BOF1", "08:00", "09:00"},
		{"", "D7091", "", "TSC1", "09:30", "10:30"},
		{"2024-03-09", "D7090", "SB410", "BOF2", "08:10", "09:10"},
		{"", "D7090", "", "TSC1", "10:40", "11:40"},
		{"", "D7092", "", "LF1", "12:00", "12:30"}, // dropped for routing
	}

	p := New(testOptions())
	first, err := p.Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := p.Run(grid)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Run IDs differ per run; everything else must be byte-identical.
	first.RunID = ""
	second.RunID = ""
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("Expected identical results across runs:\n%s\n%s", a, b)
	}

	if first.ValidHeats[0].HeatID != "D7091" {
		t.Errorf("Expected heats in first-appearance order, got %s first", first.ValidHeats[0].HeatID)
	}
	if *first.ValidHeats[0].SequenceInCaster != 1 || *first.ValidHeats[1].SequenceInCaster != 2 {
		t.Errorf("Expected TSC1 sequence by cast start, got %d and %d",
			*first.ValidHeats[0].SequenceInCaster, *first.ValidHeats[1].SequenceInCaster)
	}
}

func TestRun_StructuralFailure(t *testing.T) {
	if _, err := New(testOptions()).Run([][]any{gridHeader()}); err == nil {
		t.Error("Expected a grid without data rows to fail the run")
	}
}
