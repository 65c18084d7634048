package generate

import (
	"context"
	"net/http"

	"github.com/ytget/qr-generator/internal/model"
)

// Generator defines the interface for the QR generation backend.
type Generator interface {
	// Generate sends one request for kind with the given values and returns
	// the decoded response. It never retries.
	Generate(ctx context.Context, kind model.Kind, values model.FormValues) (model.Artifact, error)
}

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}
