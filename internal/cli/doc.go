// Package cli is the terminal front-end: it asks for the QR kind and each
// form field with survey prompts, or takes them from a YAML preset, and
// writes the generated PNG to disk through the same controller the desktop
// window uses.
package cli
