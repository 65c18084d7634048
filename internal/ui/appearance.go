package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/ytget/qr-generator/internal/config"
)

// Appearance owns the light/dark choice. It is created once at startup,
// reads the stored theme and writes every change back to settings.
type Appearance struct {
	app      fyne.App
	settings *config.Settings
	current  config.Theme
	onChange func(config.Theme)
}

// NewAppearance loads the stored theme and applies it to app
func NewAppearance(app fyne.App, settings *config.Settings) *Appearance {
	a := &Appearance{
		app:      app,
		settings: settings,
		current:  settings.GetTheme(),
	}
	a.apply()
	return a
}

// SetChangeCallback sets the function called after the theme changes
func (a *Appearance) SetChangeCallback(callback func(config.Theme)) {
	a.onChange = callback
}

// Theme returns the active theme
func (a *Appearance) Theme() config.Theme {
	return a.current
}

// IsDark reports whether the dark theme is active
func (a *Appearance) IsDark() bool {
	return a.current == config.ThemeDark
}

// SetTheme switches to t and persists it
func (a *Appearance) SetTheme(t config.Theme) {
	if t != config.ThemeDark {
		t = config.ThemeLight
	}
	a.current = t
	a.settings.SetTheme(t)
	a.apply()
	if a.onChange != nil {
		a.onChange(t)
	}
}

// Toggle flips between light and dark and returns the new theme
func (a *Appearance) Toggle() config.Theme {
	if a.IsDark() {
		a.SetTheme(config.ThemeLight)
	} else {
		a.SetTheme(config.ThemeDark)
	}
	return a.current
}

// ToggleIcon is the label of the theme button: the theme it switches to
func (a *Appearance) ToggleIcon() string {
	if a.IsDark() {
		return IconSun
	}
	return IconMoon
}

func (a *Appearance) apply() {
	a.app.Settings().SetTheme(NewCompactTheme(variantFor(a.current)))
}

func variantFor(t config.Theme) fyne.ThemeVariant {
	if t == config.ThemeDark {
		return theme.VariantDark
	}
	return theme.VariantLight
}
