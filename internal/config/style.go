package config

import (
	"sort"

	"github.com/ytget/departure-board/internal/palette"
)

// StyleName identifies a style profile
type StyleName string

const (
	StyleBoard   StyleName = "board"
	StyleCompact StyleName = "compact"
)

// Style holds the visual parameters of the board. The board and compact
// profiles differ only here.
type Style struct {
	Name         StyleName
	FontSize     float32
	BadgeWidth   float32
	BadgePadding float32
	RowPadding   float32
	Spacing      float32
	DelayGap     float32
	TextColor    palette.Color
	BadgeText    palette.Color
	DelayAlert   palette.Color
	Background   palette.Color
}

var styles = map[StyleName]Style{
	StyleBoard: {
		Name:         StyleBoard,
		FontSize:     30,
		BadgeWidth:   150,
		BadgePadding: 20,
		RowPadding:   3,
		Spacing:      5,
		DelayGap:     20,
		TextColor:    palette.White,
		BadgeText:    palette.Black,
		DelayAlert:   palette.Alert,
		Background:   palette.Background,
	},
	StyleCompact: {
		Name:         StyleCompact,
		FontSize:     18,
		BadgeWidth:   90,
		BadgePadding: 10,
		RowPadding:   2,
		Spacing:      3,
		DelayGap:     12,
		TextColor:    palette.White,
		BadgeText:    palette.Black,
		DelayAlert:   palette.Amber,
		Background:   palette.Background,
	},
}

// LookupStyle returns the named profile
func LookupStyle(name StyleName) (Style, bool) {
	s, ok := styles[name]
	return s, ok
}

// StyleOrDefault returns the named profile, falling back to the board profile
func StyleOrDefault(name StyleName) Style {
	if s, ok := styles[name]; ok {
		return s
	}
	return styles[DefaultStyle]
}

// StyleNames returns the available profile names in sorted order
func StyleNames() []StyleName {
	names := make([]StyleName, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
