package rows

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Spreadsheet date serials count days from 1899-12-30 (the Lotus
// convention carried by Excel).
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const secondsPerDay = 86400

// CoerceCell converts a raw cell value of unknown shape into its
// canonical string form: times as HH:MM, dates as YYYY-MM-DD, strings
// trimmed verbatim. The coercer is total - out-of-range numbers still
// yield a string, and validity is judged downstream by the row parser
// and temporal resolver.
func CoerceCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return coerceNumber(v)
	case float32:
		return coerceNumber(float64(v))
	case int:
		return coerceNumber(float64(v))
	case int64:
		return coerceNumber(float64(v))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// coerceNumber interprets a numeric cell. A value in (0,1) is a
// fraction-of-day time serial; a value above 1 is a date serial.
func coerceNumber(f float64) string {
	if f > 0 && f < 1 {
		// Round to whole seconds before truncating to minutes so a
		// serial like 0.3541666667 lands on 08:30, not 08:29. The
		// decimal round sidesteps binary float noise entirely.
		secs := decimal.NewFromFloat(f).
			Mul(decimal.NewFromInt(secondsPerDay)).
			Round(0).
			IntPart()
		mins := secs / 60
		return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
	}
	if f > 1 {
		days := int(f)
		return serialEpoch.AddDate(0, 0, days).Format("2006-01-02")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
