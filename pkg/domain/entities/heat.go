package entities

// Heat represents one production batch tracked through sequential
// processing stages. A Heat only exists once it has passed all fatal
// validation rules; partial heats are never constructed.
type Heat struct {
	HeatID               string      `json:"heatId"`
	SteelGrade           string      `json:"steelGrade"`
	Operations           []Operation `json:"operations"`
	CastingMachine       string      `json:"castingMachine,omitempty"`
	SequenceInCaster     *int        `json:"sequenceInCaster"`
	IsComplete           bool        `json:"isComplete"`
	TotalDurationMinutes int         `json:"totalDurationMinutes"`
	TotalIdleMinutes     int         `json:"totalIdleMinutes"`
}
