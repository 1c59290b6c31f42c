package temporal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hqsteel/heatline/pkg/domain/entities"
	"github.com/hqsteel/heatline/pkg/domain/units"
)

// dateLayouts are the calendar date shapes accepted in date cells. The
// coercer emits ISO dates; verbatim string cells additionally use the
// plant's day-first convention.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// Resolver converts per-row wall-clock strings into absolute
// timestamps. It carries no state between heats; each heat resolves
// through an explicit fold whose accumulator is the previous
// operation's end time.
type Resolver struct {
	// Location anchors parsed dates to the plant's local calendar.
	Location *time.Location
	// Today is the fallback base date for heats carrying no date cell
	// anywhere. Injected rather than read from the clock so identical
	// input resolves identically across runs.
	Today time.Time
}

// NewResolver creates a resolver for the given locale
func NewResolver(loc *time.Location, today time.Time) *Resolver {
	return &Resolver{Location: loc, Today: today}
}

// Resolution is the outcome of resolving one heat's rows.
type Resolution struct {
	Ops    []entities.Operation
	Errors []entities.ValidationError
	// Fatal marks the whole heat for dropping: at least one row hit a
	// FORMAT, TIME or MISSING error. Sibling rows still resolve so the
	// error stream classifies every row.
	Fatal bool
}

// ResolveHeat resolves a heat's rows, already in parsing order, into
// operations with absolute timestamps. Unknown units produce advisory
// warnings and are excluded without dooming the heat.
func (r *Resolver) ResolveHeat(group HeatGroup) *Resolution {
	res := &Resolution{}
	ordered := SortForParsing(group.Rows)
	baseDate := r.heatBaseDate(ordered)

	var lastEnd time.Time

	for _, row := range ordered {
		if row.Unit == "" || row.StartStr == "" || row.EndStr == "" {
			res.Errors = append(res.Errors, entities.ValidationError{
				HeatID:   group.HeatID,
				Kind:     entities.KindMissing,
				Message:  fmt.Sprintf("row %d is missing %s", row.RawIndex, missingFields(row)),
				Unit:     row.Unit,
				RawIndex: row.RawIndex,
			})
			res.Fatal = true
			continue
		}

		info, known := units.Lookup(row.Unit)
		if !known {
			res.Errors = append(res.Errors, entities.ValidationError{
				HeatID:   group.HeatID,
				Kind:     entities.KindUnit,
				Message:  fmt.Sprintf("unknown unit code %q", row.Unit),
				Unit:     row.Unit,
				RawIndex: row.RawIndex,
			})
			continue
		}

		rowBase := baseDate
		if row.DateStr != "" {
			parsed, err := r.parseDate(row.DateStr)
			if err != nil {
				res.Errors = append(res.Errors, entities.ValidationError{
					HeatID:   group.HeatID,
					Kind:     entities.KindFormat,
					Message:  fmt.Sprintf("unparseable date %q", row.DateStr),
					Unit:     row.Unit,
					RawIndex: row.RawIndex,
				})
				res.Fatal = true
				continue
			}
			rowBase = parsed
		}

		start, err := r.combine(rowBase, row.StartStr)
		if err != nil {
			res.Errors = append(res.Errors, entities.ValidationError{
				HeatID:   group.HeatID,
				Kind:     entities.KindFormat,
				Message:  fmt.Sprintf("invalid start time %q: %v", row.StartStr, err),
				Unit:     row.Unit,
				RawIndex: row.RawIndex,
			})
			res.Fatal = true
			continue
		}
		// Overnight rollover: a start earlier than the previous end
		// means the shift crossed midnight.
		if !lastEnd.IsZero() && start.Before(lastEnd) {
			start = start.AddDate(0, 0, 1)
		}

		end, err := r.combine(startOfDay(start), row.EndStr)
		if err != nil {
			res.Errors = append(res.Errors, entities.ValidationError{
				HeatID:   group.HeatID,
				Kind:     entities.KindFormat,
				Message:  fmt.Sprintf("invalid end time %q: %v", row.EndStr, err),
				Unit:     row.Unit,
				RawIndex: row.RawIndex,
			})
			res.Fatal = true
			continue
		}
		if end.Before(start) {
			end = end.AddDate(0, 0, 1)
		}

		seqOrder := info.CanonicalOrder
		if row.SeqNum != nil {
			seqOrder = *row.SeqNum
		}

		op, err := entities.NewOperation(row.Unit, info.Group, seqOrder, start, end)
		if err != nil {
			res.Errors = append(res.Errors, entities.ValidationError{
				HeatID:   group.HeatID,
				Kind:     entities.KindTime,
				Message:  fmt.Sprintf("end %s does not follow start %s", row.EndStr, row.StartStr),
				Unit:     row.Unit,
				RawIndex: row.RawIndex,
			})
			res.Fatal = true
			continue
		}

		res.Ops = append(res.Ops, *op)
		lastEnd = end
	}

	return res
}

// heatBaseDate picks the heat's base calendar date: the first row's
// parseable date cell, falling back to the injected today.
func (r *Resolver) heatBaseDate(ordered []entities.RawRow) time.Time {
	for _, row := range ordered {
		if row.DateStr == "" {
			continue
		}
		if parsed, err := r.parseDate(row.DateStr); err == nil {
			return parsed
		}
		break
	}
	return startOfDay(r.Today.In(r.Location))
}

func (r *Resolver) parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, r.Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// combine anchors a fixed-width HH:MM string onto a base calendar day,
// range-checking the digits the row parser only shape-checked.
func (r *Resolver) combine(base time.Time, hhmm string) (time.Time, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("not an HH:MM value")
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("hour out of range")
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("minute out of range")
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, 0, 0, r.Location), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func missingFields(row entities.RawRow) string {
	var missing []string
	if row.Unit == "" {
		missing = append(missing, "unit")
	}
	if row.StartStr == "" {
		missing = append(missing, "start time")
	}
	if row.EndStr == "" {
		missing = append(missing, "end time")
	}
	return strings.Join(missing, ", ")
}
