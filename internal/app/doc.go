// Package app ties the form, the generator, the result store and the
// download encoder together. The Controller is the single owner of the
// selected kind, the form values and the validation flag.
package app
