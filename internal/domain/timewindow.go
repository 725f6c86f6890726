package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of a minute-of-day value.
const MinutesPerDay = 1440

// TimeWindow is a half-open [Start, End) interval in minutes since midnight.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FullDay spans the whole day.
var FullDay = TimeWindow{Start: 0, End: MinutesPerDay}

// Overlaps reports whether a and b share any minute. Touching windows do not overlap.
func Overlaps(a, b TimeWindow) bool {
	return a.Start < b.End && a.End > b.Start
}

// Overlaps reports whether w shares any minute with other.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return Overlaps(w, other)
}

// Contains reports whether other lies entirely inside w.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return w.Start <= other.Start && other.End <= w.End
}

// Intersect returns the common part of w and other. ok is false when they do not overlap.
func (w TimeWindow) Intersect(other TimeWindow) (TimeWindow, bool) {
	if !Overlaps(w, other) {
		return TimeWindow{}, false
	}
	return TimeWindow{Start: max(w.Start, other.Start), End: min(w.End, other.End)}, true
}

// Subtract returns the parts of w not covered by cut, in start order.
func (w TimeWindow) Subtract(cut TimeWindow) []TimeWindow {
	if !Overlaps(w, cut) {
		return []TimeWindow{w}
	}
	var out []TimeWindow
	if w.Start < cut.Start {
		out = append(out, TimeWindow{Start: w.Start, End: cut.Start})
	}
	if cut.End < w.End {
		out = append(out, TimeWindow{Start: cut.End, End: w.End})
	}
	return out
}

// Minutes returns the length of the window.
func (w TimeWindow) Minutes() int {
	return w.End - w.Start
}

// Validate checks bounds and ordering.
func (w TimeWindow) Validate() error {
	if w.Start < 0 || w.Start >= MinutesPerDay {
		return fmt.Errorf("start %d outside the day", w.Start)
	}
	if w.End <= 0 || w.End > MinutesPerDay {
		return fmt.Errorf("end %d outside the day", w.End)
	}
	if w.Start >= w.End {
		return fmt.Errorf("start %s must be before end %s", FormatMinute(w.Start), FormatMinute(w.End))
	}
	return nil
}

func (w TimeWindow) String() string {
	return FormatMinute(w.Start) + "-" + FormatMinute(w.End)
}

// ParseMinute parses an "H:MM" clock string into minutes since midnight.
// "24:00" is accepted as the end-of-day bound.
func ParseMinute(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 {
		return 0, fmt.Errorf("invalid time %q (expected H:MM)", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	total := hours*60 + mins
	if total > MinutesPerDay {
		return 0, fmt.Errorf("time %q past end of day", s)
	}
	return total, nil
}

// FormatMinute renders minutes since midnight as "H:MM". It is the inverse of ParseMinute.
func FormatMinute(minute int) string {
	return fmt.Sprintf("%d:%02d", minute/60, minute%60)
}

// ParseWindow parses "H:MM-H:MM".
func ParseWindow(s string) (TimeWindow, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok {
		return TimeWindow{}, fmt.Errorf("invalid window %q (expected H:MM-H:MM)", s)
	}
	start, err := ParseMinute(a)
	if err != nil {
		return TimeWindow{}, err
	}
	end, err := ParseMinute(b)
	if err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{Start: start, End: end}, nil
}
