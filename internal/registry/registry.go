package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/models"
)

// ErrNotFound is returned when a document id is absent from the registry.
var ErrNotFound = errors.New("document not found")

// Registry owns document metadata and the processing -> completed/failed
// status transitions. Chunk text and vectors live in the vector store,
// linked by document id.
type Registry interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	List(ctx context.Context) ([]models.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// MarkCompleted records the final chunk count. Callers must persist
	// chunks to the vector store before calling it, so readers never see a
	// completed document without its chunks.
	MarkCompleted(ctx context.Context, id uuid.UUID, chunkCount, pageCount int, fileSize int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}
