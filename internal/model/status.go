package model

// Status represents the health of the last fetch cycle
type Status string

const (
	// StatusWorking means the last applied fetch succeeded (or none has failed yet)
	StatusWorking Status = "Working"

	// StatusError means the last applied fetch failed and stale data is shown
	StatusError Status = "Error"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsError returns true if the board is showing stale data after a failure
func (s Status) IsError() bool {
	return s == StatusError
}
