package ui

// Package ui contains the Fyne-based desktop user interface for the board.
// It renders the rows projected from board state, shows the fetch status,
// and owns the window lifecycle (close interception and explicit quit).
// All UI strings are localized via Localization.
