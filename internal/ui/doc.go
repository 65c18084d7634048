// Package ui contains the Fyne-based desktop user interface for the QR generator.
// It renders the kind selector, the form built from the active schema and the
// result column, and forwards user input to the app controller. All UI strings
// are localized via Localization.
package ui
