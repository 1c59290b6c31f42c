// Package orchestration wires the parsing, resolution, validation and
// derivation stages into the full pipeline.
package orchestration

import (
	"time"

	"github.com/google/uuid"

	"github.com/hqsteel/heatline/pkg/application/dto"
	"github.com/hqsteel/heatline/pkg/application/services/derive"
	"github.com/hqsteel/heatline/pkg/application/services/rows"
	"github.com/hqsteel/heatline/pkg/application/services/temporal"
	"github.com/hqsteel/heatline/pkg/domain/entities"
	"github.com/hqsteel/heatline/pkg/domain/services"
)

// Options configures a pipeline run. The zero value is not usable;
// construct through DefaultOptions.
type Options struct {
	// AllowOverlap keeps the legacy overlap-tolerant validator
	// behavior instead of rejecting overlapping operations.
	AllowOverlap bool
	// DayStartHour is the local hour at which a production day opens.
	DayStartHour int
	// Location anchors all calendar arithmetic.
	Location *time.Location
	// Today is the fallback base date for heats without date cells.
	Today time.Time
}

// DefaultOptions returns the production configuration: strict overlap
// policy, 08:00 production-day boundary, local calendar, current date.
func DefaultOptions() Options {
	return Options{
		AllowOverlap: false,
		DayStartHour: 8,
		Location:     time.Local,
		Today:        time.Now(),
	}
}

// Pipeline runs the full validation-and-transformation sequence. It is
// pure over its input apart from the generated run ID: identical rows
// yield identical heats and errors in identical order.
type Pipeline struct {
	opts      Options
	parser    *rows.Parser
	resolver  *temporal.Resolver
	validator *services.RoutingValidator
}

// New creates a pipeline with the given options
func New(opts Options) *Pipeline {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	validator := services.NewRoutingValidator()
	validator.AllowOverlap = opts.AllowOverlap

	return &Pipeline{
		opts:      opts,
		parser:    rows.NewParser(),
		resolver:  temporal.NewResolver(opts.Location, opts.Today),
		validator: validator,
	}
}

// Run executes the pipeline over a raw grid (first row headers).
// Malformed data never aborts the run; only structural failures
// (missing required columns, empty sheet) return an error.
func (p *Pipeline) Run(grid [][]any) (*dto.ParseResult, error) {
	parsed, err := p.parser.Parse(grid)
	if err != nil {
		return nil, err
	}

	result := &dto.ParseResult{
		RunID:      uuid.NewString(),
		ValidHeats: []entities.Heat{},
		Errors:     append([]entities.ValidationError{}, parsed.Warnings...),
	}

	// Per-heat map phase: each heat resolves and validates
	// independently, in first-appearance order.
	var heats []entities.Heat
	for _, group := range temporal.Group(parsed.Rows) {
		resolution := p.resolver.ResolveHeat(group)
		result.Errors = append(result.Errors, resolution.Errors...)
		if resolution.Fatal {
			continue
		}

		ops := derive.SortByStart(resolution.Ops)
		if len(ops) == 0 {
			// Every row was excluded with an advisory warning; there
			// is no operation left to build a heat from.
			continue
		}

		routingErrs := p.validator.Validate(group.HeatID, ops)
		result.Errors = append(result.Errors, routingErrs...)
		if len(routingErrs) > 0 {
			continue
		}

		heats = append(heats, derive.BuildHeat(group.HeatID, steelGrade(group), ops))
	}

	// Cross-heat reduce phase: caster sequencing needs every validated
	// heat before it can rank any of them.
	result.ValidHeats = derive.AssignCasterSequence(heats, p.opts.DayStartHour)

	return result, nil
}

// steelGrade takes the first non-empty grade in the heat's rows.
func steelGrade(group temporal.HeatGroup) string {
	for _, row := range group.Rows {
		if row.SteelGrade != "" {
			return row.SteelGrade
		}
	}
	return ""
}
