package entities

import (
	"fmt"
	"time"
)

// StageGroup represents the processing stage category a unit belongs to
type StageGroup string

const (
	GroupKR      StageGroup = "KR"
	GroupBOF     StageGroup = "BOF"
	GroupLF      StageGroup = "LF"
	GroupCaster  StageGroup = "CASTER"
	GroupUnknown StageGroup = "UNKNOWN"
)

// Operation represents one stage visit by a heat
type Operation struct {
	Unit            string     `json:"unit"`
	Group           StageGroup `json:"group"`
	SequenceOrder   int        `json:"sequenceOrder"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	IdleTimeMinutes int        `json:"idleTimeMinutes"`
}

// NewOperation creates a validated Operation
func NewOperation(
	unit string,
	group StageGroup,
	sequenceOrder int,
	startTime, endTime time.Time,
) (*Operation, error) {
	if unit == "" {
		return nil, fmt.Errorf("unit cannot be empty")
	}
	if !endTime.After(startTime) {
		return nil, fmt.Errorf(
			"end time %s must be after start time %s",
			endTime.Format("2006-01-02 15:04"),
			startTime.Format("2006-01-02 15:04"),
		)
	}

	return &Operation{
		Unit:          unit,
		Group:         group,
		SequenceOrder: sequenceOrder,
		StartTime:     startTime,
		EndTime:       endTime,
	}, nil
}
