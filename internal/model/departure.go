package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Departure is one entry of the station board
type Departure struct {
	Number string `json:"number"` // line identifier, e.g. "31" or "704"
	To     string `json:"to"`     // destination name
	Stop   Stop   `json:"stop"`
}

// Stop holds the scheduled departure of a Departure at the polled station
type Stop struct {
	Departure string `json:"departure"` // ISO-8601 timestamp
	Delay     *int   `json:"delay"`     // minutes, nil when the API omits it
}

// MissingFieldError is returned when a required station board field is absent or null
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UnmarshalJSON requires number, to and stop to be present and non-null
func (d *Departure) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number *string `json:"number"`
		To     *string `json:"to"`
		Stop   *Stop   `json:"stop"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Number == nil:
		return &MissingFieldError{Field: "number"}
	case raw.To == nil:
		return &MissingFieldError{Field: "to"}
	case raw.Stop == nil:
		return &MissingFieldError{Field: "stop"}
	}

	*d = Departure{Number: *raw.Number, To: *raw.To, Stop: *raw.Stop}
	return nil
}

// UnmarshalJSON requires departure to be present and non-null; delay stays optional
func (s *Stop) UnmarshalJSON(data []byte) error {
	var raw struct {
		Departure *string `json:"departure"`
		Delay     *int    `json:"delay"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Departure == nil {
		return &MissingFieldError{Field: "stop.departure"}
	}

	*s = Stop{Departure: *raw.Departure, Delay: raw.Delay}
	return nil
}

// DelayMinutes returns the reported delay, or 0 if none was reported
func (d Departure) DelayMinutes() int {
	if d.Stop.Delay == nil {
		return 0
	}
	return *d.Stop.Delay
}

// IsDelayed reports whether the delay exceeds threshold minutes
func (d Departure) IsDelayed(threshold int) bool {
	return d.DelayMinutes() > threshold
}

// GoesToAny reports whether the destination contains any of the given
// substrings. Matching is case-sensitive.
func (d Departure) GoesToAny(terminals []string) bool {
	for _, t := range terminals {
		if strings.Contains(d.To, t) {
			return true
		}
	}
	return false
}

// FilterByTerminals returns the departures heading to one of terminals,
// preserving order.
func FilterByTerminals(deps []Departure, terminals []string) []Departure {
	filtered := make([]Departure, 0, len(deps))
	for _, d := range deps {
		if d.GoesToAny(terminals) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
