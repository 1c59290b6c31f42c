// Package commands holds the CLI entry logic.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hqsteel/heatline/pkg/application/services/orchestration"
	"github.com/hqsteel/heatline/pkg/infrastructure/config"
	"github.com/hqsteel/heatline/pkg/infrastructure/ingest"
	"github.com/hqsteel/heatline/pkg/interfaces/cli/output"
)

// Config holds configuration for the parse command
type Config struct {
	InputFile   string
	OptionsFile string
	OutputDir   string
	Format      string
	Verbose     bool
}

// ParseCommand reads one production sheet, runs the validation
// pipeline and renders the result.
type ParseCommand struct {
	config Config
	log    zerolog.Logger
}

// NewParseCommand creates a parse command with the given configuration
func NewParseCommand(cfg Config, log zerolog.Logger) *ParseCommand {
	return &ParseCommand{config: cfg, log: log}
}

// Execute runs the parse command
func (c *ParseCommand) Execute(ctx context.Context) error {
	if c.config.InputFile == "" {
		return fmt.Errorf("no input file given (use -input)")
	}

	opts := config.Default()
	if c.config.OptionsFile != "" {
		loaded, err := config.Load(c.config.OptionsFile)
		if err != nil {
			return err
		}
		opts = loaded
		c.log.Debug().Str("file", c.config.OptionsFile).Msg("options loaded")
	}

	pipelineOpts, err := opts.PipelineOptions()
	if err != nil {
		return err
	}

	grid, err := ingest.ReadFile(c.config.InputFile)
	if err != nil {
		return err
	}
	c.log.Debug().Int("rows", len(grid)).Str("file", c.config.InputFile).Msg("grid loaded")

	started := time.Now()
	result, err := orchestration.New(pipelineOpts).Run(grid)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	fatal, advisory := 0, 0
	for _, e := range result.Errors {
		if e.IsFatal() {
			fatal++
		} else {
			advisory++
		}
	}
	c.log.Info().
		Str("run_id", result.RunID).
		Int("valid_heats", len(result.ValidHeats)).
		Int("fatal_errors", fatal).
		Int("advisories", advisory).
		Dur("elapsed", time.Since(started)).
		Msg("parse complete")

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
	})
}
