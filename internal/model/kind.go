package model

import (
	"fmt"
	"strings"
)

// Kind is the QR encoding selected by the user
type Kind int

const (
	KindContact Kind = iota
	KindWifi
	KindLink
)

// DefaultKind is the form shown on startup
const DefaultKind = KindContact

// Suffixes used for the request tag and the download filename
const (
	PayloadTypeSuffix = "-qr"
	PNGExtension      = ".png"
)

// Kinds lists every kind in menu order
func Kinds() []Kind {
	return []Kind{KindContact, KindWifi, KindLink}
}

// String returns the lowercase wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindContact:
		return "contact"
	case KindWifi:
		return "wifi"
	case KindLink:
		return "link"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds
func (k Kind) Valid() bool {
	return k >= KindContact && k <= KindLink
}

// PayloadType returns the "type" value sent to the backend, e.g. "wifi-qr"
func (k Kind) PayloadType() string {
	return k.String() + PayloadTypeSuffix
}

// Filename returns the download filename, e.g. "wifi-qr.png"
func (k Kind) Filename() string {
	return k.PayloadType() + PNGExtension
}

// ParseKind converts a wire name (case-insensitive) into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contact":
		return KindContact, nil
	case "wifi":
		return KindWifi, nil
	case "link":
		return KindLink, nil
	default:
		return DefaultKind, fmt.Errorf("unknown QR kind: %q", s)
	}
}
