// Package derive computes the scheduling attributes of validated
// heats: per-operation durations and idle gaps, per-heat totals, and
// the cross-heat caster sequence numbers.
package derive

import (
	"math"
	"sort"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// SortByStart establishes the authoritative operation order: ascending
// resolved start time, ties broken by canonical sequence order and then
// unit code so the result is fully specified.
func SortByStart(ops []entities.Operation) []entities.Operation {
	sorted := make([]entities.Operation, len(ops))
	copy(sorted, ops)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.SequenceOrder != b.SequenceOrder {
			return a.SequenceOrder < b.SequenceOrder
		}
		return a.Unit < b.Unit
	})

	return sorted
}

// BuildHeat assembles a Heat from its start-time-ordered operations,
// filling every derived field except the caster sequence number, which
// needs the full validated set (see AssignCasterSequence).
func BuildHeat(heatID, steelGrade string, ops []entities.Operation) entities.Heat {
	heat := entities.Heat{
		HeatID:     heatID,
		SteelGrade: steelGrade,
		Operations: make([]entities.Operation, len(ops)),
	}
	copy(heat.Operations, ops)

	for i := range heat.Operations {
		op := &heat.Operations[i]
		op.DurationMinutes = wholeMinutes(op.EndTime.Sub(op.StartTime))
		if i == 0 {
			op.IdleTimeMinutes = 0
		} else {
			op.IdleTimeMinutes = wholeMinutes(op.StartTime.Sub(heat.Operations[i-1].EndTime))
		}
		heat.TotalDurationMinutes += op.DurationMinutes
		heat.TotalIdleMinutes += op.IdleTimeMinutes

		// Last caster visit wins when a heat touches one twice.
		if op.Group == entities.GroupCaster {
			heat.CastingMachine = op.Unit
			heat.IsComplete = true
		}
	}

	return heat
}

// wholeMinutes rounds a span to the nearest minute, matching the
// round((end-start)/60000) convention of the display layer.
func wholeMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
