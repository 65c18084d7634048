package cli

import (
	"errors"

	"github.com/ytget/qr-generator/internal/generate"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("cli: aborted")
)

// ExitStatus maps a Run error to a process exit code. reported is true when
// the controller's error callback already showed the message to the user.
func ExitStatus(err error) (code int, reported bool) {
	var te *generate.TransportError
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, ErrAborted):
		return 130, true
	case errors.As(err, &te):
		return 1, true
	default:
		return 1, false
	}
}
