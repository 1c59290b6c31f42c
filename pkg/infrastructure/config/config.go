// Package config loads the optional parser options file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hqsteel/heatline/pkg/application/services/orchestration"
)

// Options is the YAML-facing configuration surface. Defaults preserve
// the strict production behavior; the file exists mainly so legacy
// overlap tolerance can be switched on without a rebuild.
type Options struct {
	AllowOverlap bool   `yaml:"allow_overlap"`
	DayStartHour int    `yaml:"day_start_hour"`
	Timezone     string `yaml:"timezone"`
}

// Default returns the production defaults: strict overlap policy,
// 08:00 production-day boundary, local calendar.
func Default() Options {
	return Options{
		AllowOverlap: false,
		DayStartHour: 8,
		Timezone:     "Local",
	}
}

// Load reads an options file, layering it over the defaults so omitted
// keys keep their production values.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read options file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	if opts.DayStartHour < 0 || opts.DayStartHour > 23 {
		return opts, fmt.Errorf("day_start_hour must be in 0..23, got %d", opts.DayStartHour)
	}

	return opts, nil
}

// PipelineOptions resolves the file-level options into runnable
// pipeline options, loading the timezone and stamping today's date.
func (o Options) PipelineOptions() (orchestration.Options, error) {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return orchestration.Options{}, fmt.Errorf("unknown timezone %q: %w", o.Timezone, err)
	}

	return orchestration.Options{
		AllowOverlap: o.AllowOverlap,
		DayStartHour: o.DayStartHour,
		Location:     loc,
		Today:        time.Now().In(loc),
	}, nil
}
