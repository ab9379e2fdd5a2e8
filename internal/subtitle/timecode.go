package subtitle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	wholeFieldRegex = regexp.MustCompile(`^\d+$`)
	lastFieldRegex  = regexp.MustCompile(`^\d+([.,]\d+)?$`)
)

// Floating point sums such as 1 + 0.001 land just under the millisecond
// boundary; this nudge keeps truncation from dropping a whole millisecond.
const msTolerance = 1e-6

// ParseTimestamp converts "HH:MM:SS.mmm" or "MM:SS.mmm" to seconds.
// The sub-second separator may be '.' or ','.
func ParseTimestamp(text string) (float64, error) {
	fields := strings.Split(strings.TrimSpace(text), ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
	}

	var total float64
	for i, field := range fields {
		last := i == len(fields)-1
		if last {
			if !lastFieldRegex.MatchString(field) {
				return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
			}
			field = strings.Replace(field, ",", ".", 1)
		} else if !wholeFieldRegex.MatchString(field) {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, text)
		}

		value, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, text, err)
		}
		total += value * math.Pow(60, float64(len(fields)-1-i))
	}

	return total, nil
}

// FormatSeconds renders seconds as HH:MM:SS.mmm, truncated to the millisecond.
// Negative input is treated as zero.
func FormatSeconds(seconds float64) string {
	return FormatSecondsSep(seconds, '.')
}

// same as FormatSeconds with an explicit sub-second separator
func FormatSecondsSep(seconds float64, sep byte) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	total := int64(math.Floor(seconds*1000 + msTolerance))
	hours := total / 3_600_000
	minutes := total / 60_000 % 60
	secs := total / 1000 % 60
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// rewrites the sub-second separator of a textual timestamp
func withSeparator(ts string, sep byte) string {
	idx := strings.LastIndexAny(ts, ".,")
	if idx < 0 {
		return ts
	}
	return ts[:idx] + string(sep) + ts[idx+1:]
}
