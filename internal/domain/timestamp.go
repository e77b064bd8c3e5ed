package domain

import (
	"fmt"
	"time"
)

// Wire timestamps carry exactly three fractional digits and a literal Z,
// e.g. "2021-01-10T10:33:01.420Z".
const wireTimeLayout = "2006-01-02T15:04:05.000"

// FormatWireTime renders t in the wire timestamp format.
func FormatWireTime(t time.Time) string {
	return t.UTC().Format(wireTimeLayout) + "Z"
}

// ParseWireTime parses a caller-supplied timestamp. Any fractional precision
// is accepted on input; only output is normalized to milliseconds.
func ParseWireTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
