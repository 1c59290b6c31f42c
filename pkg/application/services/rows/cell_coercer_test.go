package rows

import (
	"testing"
	"time"
)

func TestCoerceCell(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"trimmed string", "  D7090  ", "D7090"},
		{"half day", 0.5, "12:00"},
		{"truncated seconds", 0.3541666666666667, "08:30"}, // 08:30:00
		{"early morning", 0.013888888888888888, "00:20"},
		{"date serial", float64(45000), "2023-03-15"},
		{"date serial with time part", 45000.75, "2023-03-15"},
		{"native date", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "2024-03-10"},
		{"zero", float64(0), "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceCell(tc.in); got != tc.want {
				t.Errorf("CoerceCell(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCoerceCell_FloatNoise(t *testing.T) {
	// 17:45 stored as a serial loses precision in binary; the coercer
	// must still land on the exact minute.
	serial := 0.7395833333333333
	if got := CoerceCell(serial); got != "17:45" {
		t.Errorf("CoerceCell(%v) = %q, want 17:45", serial, got)
	}
}
