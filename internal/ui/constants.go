package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconLive  = "●"
	IconError = "⚠"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	ClockLayout        = "15:04:05"
)

// Window sizing
const (
	WindowWidth  float32 = 900
	WindowHeight float32 = 520
)

// Status bar
const (
	StatusTextSize float32 = 13
)
