// Package result holds the currently displayed QR artifact and drives its
// Hidden, Pending, Visible and Exiting phases, including the delayed clear
// that lets the view animate the old image out.
package result
