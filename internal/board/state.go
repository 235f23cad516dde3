package board

import (
	"time"

	"github.com/ytget/departure-board/internal/model"
)

// Mode selects how departure times are shown
type Mode int

const (
	// ModeClock shows the scheduled "HH:MM"
	ModeClock Mode = iota
	// ModeCountdown shows minutes from now
	ModeCountdown
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeClock:
		return "clock"
	case ModeCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == ModeClock {
		return ModeCountdown
	}
	return ModeClock
}

// State is the complete board state
type State struct {
	Status          model.Status
	Departures      []model.Departure
	Mode            Mode
	LastError       error
	LastUpdated     time.Time
	LastFetchID     string
	FilterTerminals bool
}

// Event is something the state machine reacts to
type Event interface {
	isEvent()
}

// TickEvent is fired by the poll timer
type TickEvent struct {
	At time.Time
}

// RefreshEvent requests an immediate fetch without touching the display mode
type RefreshEvent struct{}

// FilterEvent switches terminal filtering and fetches with the new setting
type FilterEvent struct {
	Enabled bool
}

// FetchResultEvent carries the outcome of one fetch
type FetchResultEvent struct {
	FetchID    string
	Departures []model.Departure
	Err        error
	ReceivedAt time.Time
}

func (TickEvent) isEvent()        {}
func (RefreshEvent) isEvent()     {}
func (FilterEvent) isEvent()      {}
func (FetchResultEvent) isEvent() {}

// Command is the side effect requested by Update
type Command struct {
	Fetch           bool
	FilterTerminals bool
}

// None is the empty command
var None = Command{}

func fetch(filter bool) Command {
	return Command{Fetch: true, FilterTerminals: filter}
}

// Initial returns the startup state and the startup fetch
func Initial(filterTerminals bool) (State, Command) {
	s := State{
		Status:          model.StatusWorking,
		Departures:      []model.Departure{},
		Mode:            ModeClock,
		FilterTerminals: filterTerminals,
	}
	return s, fetch(filterTerminals)
}

// Update applies ev to s. It never mutates s's departure slice.
func Update(s State, ev Event) (State, Command) {
	switch e := ev.(type) {
	case TickEvent:
		s.Mode = s.Mode.Toggle()
		return s, fetch(s.FilterTerminals)

	case RefreshEvent:
		return s, fetch(s.FilterTerminals)

	case FilterEvent:
		s.FilterTerminals = e.Enabled
		return s, fetch(s.FilterTerminals)

	case FetchResultEvent:
		s.LastFetchID = e.FetchID
		if e.Err != nil {
			s.Status = model.StatusError
			s.LastError = e.Err
			return s, None
		}
		s.Status = model.StatusWorking
		s.LastError = nil
		s.Departures = e.Departures
		if s.Departures == nil {
			s.Departures = []model.Departure{}
		}
		s.LastUpdated = e.ReceivedAt
		return s, None
	}

	return s, None
}
