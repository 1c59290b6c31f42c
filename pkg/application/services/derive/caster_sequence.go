package derive

import (
	"sort"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
)

// cohortKey identifies one casting machine's production-day cohort.
type cohortKey struct {
	Machine string
	Day     string
}

// ProductionDay buckets a timestamp into the plant's scheduling window,
// which runs from dayStartHour local time to the same hour next
// calendar day. A 07:59 caster start therefore still belongs to the
// previous production day when the window opens at 08:00.
func ProductionDay(t time.Time, dayStartHour int) time.Time {
	shifted := t.Add(-time.Duration(dayStartHour) * time.Hour)
	return time.Date(shifted.Year(), shifted.Month(), shifted.Day(), 0, 0, 0, 0, t.Location())
}

// AssignCasterSequence ranks heats within each (casting machine,
// production day) cohort by caster start time and writes 1-based
// sequence numbers. Heats that never reach a caster keep a nil
// sequence and join no cohort. This is the one cross-heat step of the
// pipeline and must run after every heat is individually validated.
func AssignCasterSequence(heats []entities.Heat, dayStartHour int) []entities.Heat {
	out := make([]entities.Heat, len(heats))
	copy(out, heats)

	type member struct {
		idx   int
		start time.Time
	}
	cohorts := make(map[cohortKey][]member)
	var keys []cohortKey

	for i := range out {
		start, ok := casterStart(&out[i])
		if !ok {
			out[i].SequenceInCaster = nil
			continue
		}
		key := cohortKey{
			Machine: out[i].CastingMachine,
			Day:     ProductionDay(start, dayStartHour).Format("2006-01-02"),
		}
		if _, seen := cohorts[key]; !seen {
			keys = append(keys, key)
		}
		cohorts[key] = append(cohorts[key], member{idx: i, start: start})
	}

	for _, key := range keys {
		members := cohorts[key]
		sort.SliceStable(members, func(i, j int) bool {
			if !members[i].start.Equal(members[j].start) {
				return members[i].start.Before(members[j].start)
			}
			return out[members[i].idx].HeatID < out[members[j].idx].HeatID
		})
		for rank, m := range members {
			seq := rank + 1
			out[m.idx].SequenceInCaster = &seq
		}
	}

	return out
}

// casterStart finds the start time of the heat's last caster visit.
func casterStart(h *entities.Heat) (time.Time, bool) {
	var start time.Time
	found := false
	for _, op := range h.Operations {
		if op.Group == entities.GroupCaster && op.Unit == h.CastingMachine {
			start = op.StartTime
			found = true
		}
	}
	return start, found
}
