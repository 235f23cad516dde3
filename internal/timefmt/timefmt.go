package timefmt

// Package timefmt turns station board timestamps into the strings shown on the
// board: a wall clock "HH:MM" and an unsigned minute distance from now.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted timestamp layouts, tried in order. The station board API emits
// offsets without a colon ("+0100"). Basic format ("20240301T100700+0100")
// is accepted as well.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"20060102T150405Z0700",
	"20060102T1504Z0700",
	"20060102T150405",
	"20060102T1504",
}

// ClockFormat is the zero padded "HH:MM" layout
const ClockFormat = "%02d:%02d"

// ParseError is returned when a timestamp matches none of the accepted layouts
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses an ISO-8601 timestamp. The returned time keeps the offset
// written in the timestamp.
func Parse(ts string) (time.Time, error) {
	value := strings.TrimSpace(ts)
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Value: ts, Err: lastErr}
}

// FormatClock returns the "HH:MM" wall clock of the timestamp
func FormatClock(ts string) (string, error) {
	t, err := Parse(ts)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(ClockFormat, t.Hour(), t.Minute()), nil
}

// FormatDelta returns the absolute number of whole minutes between the
// departure's time of day and now's time of day. Dates are ignored, so a
// departure just after midnight seen just before midnight reads as a large
// value.
func FormatDelta(ts string, now time.Time) (string, error) {
	t, err := Parse(ts)
	if err != nil {
		return "", err
	}

	departure := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute

	diff := departure - timeOfDay(now)
	if diff < 0 {
		diff = -diff
	}
	return strconv.Itoa(int(diff / time.Minute)), nil
}

// timeOfDay returns the time elapsed since midnight on t's wall clock, down to the nanosecond
func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
}
