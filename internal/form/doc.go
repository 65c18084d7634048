// Package form holds the per-kind field schemas and the client-side rules
// applied to them: constraint validation, phone reformatting and the email
// keystroke filter. Everything here is pure and safe for concurrent use.
package form
