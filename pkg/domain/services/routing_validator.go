package services

import (
	"fmt"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// RoutingValidator enforces process-routing and temporal-consistency
// rules over a heat's operations. Operations must already be sorted
// ascending by start time; that order is authoritative and supersedes
// any parse-order heuristic.
type RoutingValidator struct {
	// AllowOverlap keeps the legacy display-tolerant behavior: when
	// set, overlapping consecutive operations are not rejected.
	AllowOverlap bool
}

// NewRoutingValidator creates a validator with the strict overlap policy
func NewRoutingValidator() *RoutingValidator {
	return &RoutingValidator{}
}

// Validate checks a heat's sorted operations and returns every rule
// violation found. An empty result means the heat is routable.
func (v *RoutingValidator) Validate(heatID string, ops []entities.Operation) []entities.ValidationError {
	var errs []entities.ValidationError

	errs = append(errs, v.checkOverlap(heatID, ops)...)
	errs = append(errs, v.checkDuplicateGroups(heatID, ops)...)
	errs = append(errs, v.checkLadleFurnacePredecessor(heatID, ops)...)

	return errs
}

// checkOverlap verifies each operation starts no earlier than its
// predecessor ends.
func (v *RoutingValidator) checkOverlap(heatID string, ops []entities.Operation) []entities.ValidationError {
	if v.AllowOverlap {
		return nil
	}

	var errs []entities.ValidationError
	for i := 1; i < len(ops); i++ {
		if ops[i].StartTime.Before(ops[i-1].EndTime) {
			errs = append(errs, entities.ValidationError{
				HeatID: heatID,
				Kind:   entities.KindTime,
				Message: fmt.Sprintf(
					"operation %s starts %s before %s ends %s",
					ops[i].Unit, ops[i].StartTime.Format("15:04"),
					ops[i-1].Unit, ops[i-1].EndTime.Format("15:04"),
				),
				Unit:    ops[i].Unit,
				OpIndex: i,
			})
		}
	}
	return errs
}

// checkDuplicateGroups rejects heats visiting two distinct units of the
// same stage group. The LF group is exempt: a heat may legitimately
// revisit multiple ladle-furnace stations in sequence.
func (v *RoutingValidator) checkDuplicateGroups(heatID string, ops []entities.Operation) []entities.ValidationError {
	unitsByGroup := make(map[entities.StageGroup]map[string]bool)
	for _, op := range ops {
		if unitsByGroup[op.Group] == nil {
			unitsByGroup[op.Group] = make(map[string]bool)
		}
		unitsByGroup[op.Group][op.Unit] = true
	}

	var errs []entities.ValidationError
	// Check in fixed group order so output is deterministic
	for _, group := range []entities.StageGroup{
		entities.GroupKR,
		entities.GroupBOF,
		entities.GroupLF,
		entities.GroupCaster,
	} {
		if group == entities.GroupLF {
			continue
		}
		if len(unitsByGroup[group]) > 1 {
			errs = append(errs, entities.ValidationError{
				HeatID: heatID,
				Kind:   entities.KindRouting,
				Message: fmt.Sprintf(
					"heat visits %d distinct %s units, at most one allowed",
					len(unitsByGroup[group]), group,
				),
			})
		}
	}
	return errs
}

// checkLadleFurnacePredecessor enforces that any LF operation is
// preceded by a completed BOF stage: a BOF operation must exist and
// every LF start must be at or after the BOF end.
func (v *RoutingValidator) checkLadleFurnacePredecessor(heatID string, ops []entities.Operation) []entities.ValidationError {
	var lfOps []int
	var bofEnd *entities.Operation
	for i := range ops {
		switch ops[i].Group {
		case entities.GroupLF:
			lfOps = append(lfOps, i)
		case entities.GroupBOF:
			if bofEnd == nil || ops[i].EndTime.After(bofEnd.EndTime) {
				bofEnd = &ops[i]
			}
		}
	}

	if len(lfOps) == 0 {
		return nil
	}

	if bofEnd == nil {
		return []entities.ValidationError{{
			HeatID:  heatID,
			Kind:    entities.KindRouting,
			Message: "LF operation present without a preceding BOF stage",
			Unit:    ops[lfOps[0]].Unit,
			OpIndex: lfOps[0],
		}}
	}

	var errs []entities.ValidationError
	for _, i := range lfOps {
		if ops[i].StartTime.Before(bofEnd.EndTime) {
			errs = append(errs, entities.ValidationError{
				HeatID: heatID,
				Kind:   entities.KindRouting,
				Message: fmt.Sprintf(
					"LF operation %s starts %s before BOF %s ends %s",
					ops[i].Unit, ops[i].StartTime.Format("15:04"),
					bofEnd.Unit, bofEnd.EndTime.Format("15:04"),
				),
				Unit:    ops[i].Unit,
				OpIndex: i,
			})
		}
	}
	return errs
}
