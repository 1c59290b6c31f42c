// Package output renders parse results as text, JSON, CSV or an SVG
// timeline.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hqsteel/heatline/pkg/application/dto"
	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
}

// Generate creates output in the specified format
func Generate(result *dto.ParseResult, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(result)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	case "svg":
		return generateSVGOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput prints a human-readable summary to stdout. The
// error stream is partitioned here, on the consumer side, into fatal
// and advisory buckets.
func generateTextOutput(result *dto.ParseResult) error {
	fmt.Printf("Heat Schedule Summary\n")
	fmt.Printf("=====================\n\n")
	fmt.Printf("Valid heats: %d\n\n", len(result.ValidHeats))

	if len(result.ValidHeats) > 0 {
		fmt.Printf("%-10s %-10s %-5s %-8s %-5s %-10s %-10s\n",
			"Heat", "Grade", "Ops", "Caster", "Seq", "Total min", "Idle min")
		fmt.Printf("%-10s %-10s %-5s %-8s %-5s %-10s %-10s\n",
			"----------", "----------", "-----", "--------", "-----", "----------", "----------")

		for _, heat := range result.ValidHeats {
			seq := "-"
			if heat.SequenceInCaster != nil {
				seq = strconv.Itoa(*heat.SequenceInCaster)
			}
			caster := heat.CastingMachine
			if caster == "" {
				caster = "-"
			}
			fmt.Printf("%-10s %-10s %-5d %-8s %-5s %-10d %-10d\n",
				heat.HeatID, heat.SteelGrade, len(heat.Operations),
				caster, seq, heat.TotalDurationMinutes, heat.TotalIdleMinutes)
		}
		fmt.Println()
	}

	var fatal, advisory []entities.ValidationError
	for _, e := range result.Errors {
		if e.IsFatal() {
			fatal = append(fatal, e)
		} else {
			advisory = append(advisory, e)
		}
	}

	if len(fatal) > 0 {
		fmt.Printf("Blocking errors (%d):\n", len(fatal))
		for _, e := range fatal {
			fmt.Printf("  %s\n", e.Error())
		}
		fmt.Println()
	}
	if len(advisory) > 0 {
		fmt.Printf("Advisories (%d):\n", len(advisory))
		for _, e := range advisory {
			fmt.Printf("  %s\n", e.Error())
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput writes the full result as indented JSON.
func generateJSONOutput(result *dto.ParseResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "heats.json")
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// generateCSVOutput writes heats.csv (one row per operation) and
// errors.csv into the output directory.
func generateCSVOutput(result *dto.ParseResult, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := writeHeatsCSV(result.ValidHeats, filepath.Join(config.OutputDir, "heats.csv")); err != nil {
		return fmt.Errorf("failed to write heats CSV: %w", err)
	}
	if err := writeErrorsCSV(result.Errors, filepath.Join(config.OutputDir, "errors.csv")); err != nil {
		return fmt.Errorf("failed to write errors CSV: %w", err)
	}
	return nil
}

func writeHeatsCSV(heats []entities.Heat, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{
		"heat_id", "steel_grade", "unit", "group", "start_time", "end_time",
		"duration_minutes", "idle_minutes", "casting_machine", "sequence_in_caster",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, heat := range heats {
		seq := ""
		if heat.SequenceInCaster != nil {
			seq = strconv.Itoa(*heat.SequenceInCaster)
		}
		for _, op := range heat.Operations {
			record := []string{
				heat.HeatID,
				heat.SteelGrade,
				op.Unit,
				string(op.Group),
				op.StartTime.Format("2006-01-02 15:04"),
				op.EndTime.Format("2006-01-02 15:04"),
				strconv.Itoa(op.DurationMinutes),
				strconv.Itoa(op.IdleTimeMinutes),
				heat.CastingMachine,
				seq,
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeErrorsCSV(errs []entities.ValidationError, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"heat_id", "kind", "severity", "unit", "raw_index", "message"}); err != nil {
		return err
	}
	for _, e := range errs {
		severity := "advisory"
		if e.IsFatal() {
			severity = "fatal"
		}
		rawIndex := ""
		if e.RawIndex > 0 {
			rawIndex = strconv.Itoa(e.RawIndex)
		}
		record := []string{e.HeatID, string(e.Kind), severity, e.Unit, rawIndex, e.Message}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// generateSVGOutput renders the timeline chart.
func generateSVGOutput(result *dto.ParseResult, config Config) error {
	svg := NewTimeline(result.ValidHeats).RenderSVG()

	if config.OutputDir == "" {
		fmt.Println(svg)
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "timeline.svg")
	if err := os.WriteFile(filename, []byte(svg), 0644); err != nil {
		return fmt.Errorf("failed to write SVG file: %w", err)
	}
	return nil
}
