package entities

import "fmt"

// ErrorKind classifies a validation error
type ErrorKind string

const (
	// Advisory kinds: the owning heat is still eligible for output
	KindUnit        ErrorKind = "UNIT"
	KindPlaceholder ErrorKind = "PLACEHOLDER"

	// Fatal kinds: the owning heat is dropped entirely
	KindFormat  ErrorKind = "FORMAT"
	KindTime    ErrorKind = "TIME"
	KindRouting ErrorKind = "ROUTING"
	KindMissing ErrorKind = "MISSING"
)

// ValidationError represents one classified domain error or warning
// collected during a parse run. Domain errors are accumulated, never
// raised; only structural failures abort a run.
type ValidationError struct {
	HeatID   string    `json:"heatId"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Unit     string    `json:"unit,omitempty"`
	RawIndex int       `json:"rawIndex,omitempty"`
	OpIndex  int       `json:"opIndex,omitempty"`
}

// IsFatal reports whether this error drops its owning heat. UNIT and
// PLACEHOLDER are advisory; every other kind is fatal.
func (e ValidationError) IsFatal() bool {
	return e.Kind != KindUnit && e.Kind != KindPlaceholder
}

// Error implements the error interface for logging convenience.
func (e ValidationError) Error() string {
	if e.HeatID == "" {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] heat %s: %s", e.Kind, e.HeatID, e.Message)
}
