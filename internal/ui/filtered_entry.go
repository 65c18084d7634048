package ui

import (
	"fyne.io/fyne/v2/widget"
)

// filteredEntry is an Entry that drops keystrokes rejected by allow.
// Pasted text is not filtered; validation reports it.
type filteredEntry struct {
	widget.Entry
	allow func(rune) bool
}

func newFilteredEntry(allow func(rune) bool) *filteredEntry {
	e := &filteredEntry{allow: allow}
	e.ExtendBaseWidget(e)
	return e
}

// TypedRune receives text input events
func (e *filteredEntry) TypedRune(r rune) {
	if e.allow != nil && !e.allow(r) {
		return
	}
	e.Entry.TypedRune(r)
}
