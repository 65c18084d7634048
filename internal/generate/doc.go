// Package generate talks to the remote QR generator. It posts the form
// values of one kind to <backend>/generate and turns the reply into a
// model.Artifact holding the captioned and bare PNG variants.
package generate
