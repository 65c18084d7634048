package generate

import (
	"context"
	"sync"

	"github.com/ytget/qr-generator/internal/model"
)

// StaticGenerator returns a fixed artifact or error. It stands in for the
// backend in tests and records what it was asked for.
type StaticGenerator struct {
	Artifact model.Artifact
	Err      error

	mu    sync.Mutex
	calls []model.FormValues
}

// Generate records the call and returns the configured outcome
func (g *StaticGenerator) Generate(ctx context.Context, kind model.Kind, values model.FormValues) (model.Artifact, error) {
	g.mu.Lock()
	g.calls = append(g.calls, values.Clone())
	g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return model.Artifact{}, &TransportError{Message: err.Error(), Err: err}
	}
	if g.Err != nil {
		return model.Artifact{}, g.Err
	}
	artifact := g.Artifact
	artifact.Kind = kind
	if artifact.ID == "" {
		artifact.ID = newArtifactID()
	}
	return artifact, nil
}

// Calls returns copies of the values passed to Generate
func (g *StaticGenerator) Calls() []model.FormValues {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.FormValues, len(g.calls))
	copy(out, g.calls)
	return out
}
