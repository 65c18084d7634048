package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Layout picks container arrangements for desktop and mobile devices
type Layout struct {
	device fyne.Device
}

// NewLayout creates a layout helper for the current device
func NewLayout(device fyne.Device) *Layout {
	return &Layout{device: device}
}

// IsMobileDevice checks if the app is running on a mobile device
func (l *Layout) IsMobileDevice() bool {
	return l.device != nil && l.device.IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (l *Layout) IsLandscape() bool {
	if l.device == nil {
		return true
	}
	orientation := l.device.Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// Columns returns how many columns the form and result share. Phones in
// portrait stack them, so the result needs scrolling into view.
func (l *Layout) Columns() int {
	if l.IsMobileDevice() && !l.IsLandscape() {
		return MobileColumns
	}
	return ResultColumns
}

// Stacked reports whether the result is rendered below the form
func (l *Layout) Stacked() bool {
	return l.Columns() == MobileColumns
}

// Split arranges form and result side by side or stacked
func (l *Layout) Split(formPane, resultPane fyne.CanvasObject) *fyne.Container {
	return container.NewAdaptiveGrid(l.Columns(), formPane, resultPane)
}
