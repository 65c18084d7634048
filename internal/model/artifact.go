package model

import "time"

// PNGDataURIPrefix prefixes a base64 PNG so it can be used as an image source
const PNGDataURIPrefix = "data:image/png;base64,"

// Artifact holds the generated QR images as base64 PNG strings
type Artifact struct {
	ID         string
	Kind       Kind
	Caption    string // image with the caption text underneath
	NoCaption  string // bare QR code
	ReceivedAt time.Time
}

// Variant returns the base64 payload for the selected caption state
func (a Artifact) Variant(captionVisible bool) string {
	if captionVisible {
		return a.Caption
	}
	return a.NoCaption
}

// DataURI returns the selected variant as a data: URI
func (a Artifact) DataURI(captionVisible bool) string {
	return PNGDataURIPrefix + a.Variant(captionVisible)
}

// HasDistinctVariants reports whether toggling the caption changes the image
func (a Artifact) HasDistinctVariants() bool {
	return a.Caption != a.NoCaption
}
