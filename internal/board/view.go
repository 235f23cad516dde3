package board

import (
	"strconv"
	"time"

	"github.com/ytget/departure-board/internal/palette"
	"github.com/ytget/departure-board/internal/timefmt"
)

// DelayAlertThreshold is the delay in minutes above which the delay is highlighted
const DelayAlertThreshold = 2

// Placeholders for departures whose timestamp cannot be parsed
const (
	InvalidClock = "--:--"
	InvalidDelta = "?"
)

// Row is one displayed departure
type Row struct {
	Line        string
	LineColor   palette.Color
	Destination string
	Time        string
	Delay       string
	DelayAlert  bool
	TimeInvalid bool
}

// Project returns the rows for s as seen at now
func Project(s State, now time.Time) []Row {
	rows := make([]Row, 0, len(s.Departures))
	for _, dep := range s.Departures {
		var (
			text string
			err  error
		)
		if s.Mode == ModeCountdown {
			text, err = timefmt.FormatDelta(dep.Stop.Departure, now)
		} else {
			text, err = timefmt.FormatClock(dep.Stop.Departure)
		}

		row := Row{
			Line:        dep.Number,
			LineColor:   palette.LineColor(dep.Number),
			Destination: dep.To,
			Time:        text,
			Delay:       "+" + strconv.Itoa(dep.DelayMinutes()),
			DelayAlert:  dep.IsDelayed(DelayAlertThreshold),
		}
		if err != nil {
			row.TimeInvalid = true
			if s.Mode == ModeCountdown {
				row.Time = InvalidDelta
			} else {
				row.Time = InvalidClock
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Summary is the status banner content
type Summary struct {
	Healthy     bool
	Count       int
	LastUpdated time.Time
	Error       string
}

// Summarize returns the status banner content for s
func Summarize(s State) Summary {
	sum := Summary{
		Healthy:     !s.Status.IsError(),
		Count:       len(s.Departures),
		LastUpdated: s.LastUpdated,
	}
	if s.LastError != nil {
		sum.Error = s.LastError.Error()
	}
	return sum
}
