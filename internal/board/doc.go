package board

// Package board holds the departure board state machine. Update is a pure
// function from (state, event) to (state, command); Runner drives it from a
// ticker and asynchronous fetches on a single goroutine, and Project turns a
// state into displayable rows.
