package generate

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse is returned when a 2xx reply carries no image
var ErrEmptyResponse = errors.New("generate: empty response body")

// ErrResponseTooLarge is returned when a 2xx reply exceeds the size cap
var ErrResponseTooLarge = errors.New("generate: response body too large")

// TransportError covers every failed request: non-2xx replies (Status set)
// and failures before a reply arrived (Status 0, Err set).
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("generate: request failed: %s", e.Message)
	}
	return fmt.Sprintf("generate: backend error (%d): %s", e.Status, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage is the text shown to the user. For backend errors it is the
// response body as received.
func (e *TransportError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return http.StatusText(e.Status)
	}
	return "request failed"
}

// UserMessage extracts the user-facing text of any error returned by a Generator
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.UserMessage()
	}
	return err.Error()
}
