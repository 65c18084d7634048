// Package model defines the data shared by the form, request and result
// layers: the selected QR kind, field schemas, form values, generated
// artifacts and the result phase enum.
package model
