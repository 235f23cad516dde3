package palette

// Package palette maps transit line identifiers to their badge colours and
// holds the fixed colours used by the board.

import (
	"image/color"
	"strings"
)

// ChannelMax is the top of the 0-255 channel scale
const ChannelMax = 255.0

// Color is an opaque colour with channels normalised to 0..1
type Color struct {
	R, G, B float32
}

// RGB converts 0-255 channel values to a normalised Color
func RGB(r, g, b float32) Color {
	return Color{R: normalize(r), G: normalize(g), B: normalize(b)}
}

func normalize(c float32) float32 {
	return c / ChannelMax
}

// NRGBA returns the colour in 8-bit channels
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func to8(c float32) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 0xff
	}
	return uint8(c*ChannelMax + 0.5)
}

// Fixed board colours
var (
	Alert      = RGB(255, 0, 0)
	Amber      = RGB(255, 193, 3)
	White      = RGB(255, 255, 255)
	Black      = RGB(0, 0, 0)
	Background = RGB(7, 121, 204)
)

// Known line colours, keyed by trimmed line identifier
var lineColors = map[string]Color{
	"31":  RGB(164, 162, 198),
	"704": RGB(141, 34, 78),
	"701": RGB(0, 141, 197),
	"703": RGB(255, 193, 3),
	"91":  RGB(255, 255, 255),
}

// LineColor returns the badge colour for a line identifier. Unknown lines get
// the alert colour.
func LineColor(id string) Color {
	if c, ok := lineColors[strings.TrimSpace(id)]; ok {
		return c
	}
	return Alert
}
