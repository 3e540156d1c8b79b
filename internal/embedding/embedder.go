package embedding

import (
	"context"
	"errors"
)

// ErrEmbedding wraps any failure to produce a vector (empty input, model
// unavailable). It is a hard error for the whole request; the pipeline
// never retries it.
var ErrEmbedding = errors.New("embedding failed")

// Embedder turns text into fixed-dimension vectors. Implementations must
// be deterministic for identical input given a fixed model version.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimension() int
}
