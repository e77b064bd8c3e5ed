package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the upper bound for a minute-of-day value; 24:00 is a
// legal interval end used for all-day windows.
const MinutesPerDay = 24 * 60

// TimeWindow is a time-of-day interval in minutes since midnight.
type TimeWindow struct {
	Start int
	End   int
}

// ParseTimeWindow parses an interval in "HH:MM-HH:MM" form.
func ParseTimeWindow(s string) (TimeWindow, error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("time window %q: want HH:MM-HH:MM", s)
	}
	start, err := parseMinuteOfDay(from)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("time window %q: %w", s, err)
	}
	end, err := parseMinuteOfDay(to)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("time window %q: %w", s, err)
	}
	return TimeWindow{Start: start, End: end}, nil
}

func parseMinuteOfDay(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("bad time %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("bad hour %q", hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("bad minute %q", mm)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || h*60+m > MinutesPerDay {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// ParseTimeWindows parses a list of "HH:MM-HH:MM" intervals, keeping order.
func ParseTimeWindows(ss []string) ([]TimeWindow, error) {
	out := make([]TimeWindow, 0, len(ss))
	for _, s := range ss {
		w, err := ParseTimeWindow(s)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// String renders the window back to "HH:MM-HH:MM".
func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Start/60, w.Start%60, w.End/60, w.End%60)
}

// FormatTimeWindows renders windows for storage and API output.
func FormatTimeWindows(ws []TimeWindow) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.String())
	}
	return out
}

// inside reports whether minute m lies strictly inside w. Endpoints do not
// count: windows that merely touch do not overlap.
func (w TimeWindow) inside(m int) bool {
	return w.Start < m && m < w.End
}

// Overlaps reports whether two windows share interior points. The predicate
// is symmetric: an endpoint of either window must fall strictly inside the
// other.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.inside(o.Start) || w.inside(o.End) || o.inside(w.Start) || o.inside(w.End)
}

// AnyOverlap reports whether any window of a overlaps any window of b.
func AnyOverlap(a, b []TimeWindow) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa.Overlaps(wb) {
				return true
			}
		}
	}
	return false
}
