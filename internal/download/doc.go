// Package download turns a displayed artifact into a PNG file: it decodes
// the selected base64 variant, names the file after the QR kind and writes
// it to the downloads directory.
package download
