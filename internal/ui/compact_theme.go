package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme defines a compact theme for the UI with reduced padding and font sizes.
// The variant is fixed at construction so the user's light/dark choice wins
// over the operating system setting.
type CompactTheme struct {
	variant fyne.ThemeVariant
}

// NewCompactTheme creates a new compact theme for the given variant
func NewCompactTheme(variant fyne.ThemeVariant) fyne.Theme {
	return &CompactTheme{variant: variant}
}

// Variant returns the forced variant
func (t *CompactTheme) Variant() fyne.ThemeVariant {
	return t.variant
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := t.variant
	switch name {
	case theme.ColorNameError:
		return color.RGBA{R: 198, G: 40, B: 40, A: 255} // field errors
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 121, B: 107, A: 255} // teal generate/download buttons
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 24, G: 26, B: 27, A: 255}
		}
		return color.White
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 232, G: 234, B: 237, A: 255}
		}
		return color.RGBA{R: 32, G: 33, B: 36, A: 255}
	case theme.ColorNameInputBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 40, G: 43, B: 45, A: 255}
		}
		return color.RGBA{R: 241, G: 243, B: 244, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size tightens padding so the form and the image fit side by side
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 4
	}
	return theme.DefaultTheme().Size(name)
}
