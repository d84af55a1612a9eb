package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ModernTheme is the dark navy look of the event brand.
type ModernTheme struct{}

// NewModernTheme creates the event theme.
func NewModernTheme() fyne.Theme {
	return &ModernTheme{}
}

// Color defines the theme palette.
func (m *ModernTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{10, 13, 28, 255} // deep navy background
	case theme.ColorNameForeground:
		return color.RGBA{226, 232, 245, 255} // near-white text
	case theme.ColorNameButton:
		return color.RGBA{26, 33, 58, 255} // dark blue button
	case theme.ColorNamePrimary:
		return color.RGBA{96, 165, 250, 255} // bright blue (primary)
	case theme.ColorNameSuccess:
		return color.RGBA{52, 211, 153, 255} // gain green
	case theme.ColorNameWarning:
		return color.RGBA{251, 191, 36, 255} // stale yellow
	case theme.ColorNameError:
		return color.RGBA{248, 113, 113, 255} // loss red
	case theme.ColorNameHover:
		return color.RGBA{38, 48, 82, 255} // lighter blue on hover
	case theme.ColorNameFocus:
		return color.RGBA{96, 165, 250, 255} // focus blue
	case theme.ColorNameShadow:
		return color.RGBA{0, 0, 0, 80}
	case theme.ColorNameInputBackground:
		return color.RGBA{20, 26, 48, 255} // input field background
	case theme.ColorNameHeaderBackground:
		return color.RGBA{14, 18, 36, 255} // header background
	case theme.ColorNameMenuBackground:
		return color.RGBA{16, 21, 42, 255} // menu background
	case theme.ColorNameOverlayBackground:
		return color.RGBA{0, 0, 0, 120}
	case theme.ColorNameSeparator:
		return color.RGBA{60, 74, 120, 180} // blue separator
	}
	return theme.DefaultTheme().Color(name, variant)
}

// Font defines the theme fonts.
func (m *ModernTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon defines the theme icons.
func (m *ModernTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size defines the theme sizes.
func (m *ModernTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameCaptionText:
		return 12
	case theme.SizeNamePadding:
		return 12
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameScrollBar:
		return 8
	case theme.SizeNameScrollBarSmall:
		return 4
	case theme.SizeNameSeparatorThickness:
		return 2
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius:
		return 8
	}
	return theme.DefaultTheme().Size(name)
}

// Accent colors used outside the theme lookup.
var (
	ColorGain  = color.RGBA{52, 211, 153, 255}  // green for buys and gains
	ColorLoss  = color.RGBA{248, 113, 113, 255} // red for sells and errors
	ColorStale = color.RGBA{251, 191, 36, 255}  // yellow for stale data
	ColorMuted = color.RGBA{140, 152, 185, 255} // secondary text
)
