package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/departure-board/internal/config"
	"github.com/ytget/departure-board/internal/palette"
)

// BoardTheme is a dark theme on the transit-blue background, sized by a style profile
type BoardTheme struct {
	style config.Style
}

// NewBoardTheme creates a theme for the given style
func NewBoardTheme(style config.Style) fyne.Theme {
	return &BoardTheme{style: style}
}

// Color returns theme colors
func (t *BoardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return t.style.Background
	case theme.ColorNameForeground:
		return t.style.TextColor
	case theme.ColorNameError:
		return t.style.DelayAlert
	case theme.ColorNameWarning:
		return palette.Amber
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 40}
	}

	// Everything else follows the dark default
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *BoardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *BoardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes adjusted to the style profile
func (t *BoardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return t.style.Spacing
	case theme.SizeNameText:
		return t.style.FontSize
	case theme.SizeNameSeparatorThickness:
		return 1
	}

	return theme.DefaultTheme().Size(name)
}
