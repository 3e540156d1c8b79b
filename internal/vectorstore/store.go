package vectorstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidTopK is returned by Search when the requested result count is
// below one.
var ErrInvalidTopK = errors.New("top k must be >= 1")

// Chunk is the unit written to the store at ingestion time.
type Chunk struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	ChunkIndex int
	Content    string
	Embedding  []float32
	Filename   string
}

// SearchOptions narrows a similarity search. A zero DocumentID searches
// across all documents.
type SearchOptions struct {
	TopK       int
	DocumentID uuid.UUID
}

// Candidate is one raw search hit, ordered by ascending cosine distance.
// Distance is in [0,2]; 0 means identical direction.
type Candidate struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Content    string    `json:"content"`
	Filename   string    `json:"filename"`
	ChunkIndex int       `json:"chunk_index"`
	Distance   float64   `json:"distance"`
}

// VectorStore owns chunk text and embeddings. Implementations must be safe
// for concurrent reads and concurrent writes of distinct documents.
type VectorStore interface {
	Upsert(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, query []float32, opts SearchOptions) ([]Candidate, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
	ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Chunk, error)
	CountChunks(ctx context.Context) (int64, error)
}
