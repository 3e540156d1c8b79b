package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/models"
)

// MemoryRegistry keeps document metadata in process memory. Used by tests
// and local development without Postgres.
type MemoryRegistry struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.Document
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{docs: make(map[uuid.UUID]models.Document)}
}

func (r *MemoryRegistry) Create(ctx context.Context, doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.Status == "" {
		doc.Status = models.DocStatusProcessing
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	r.docs[doc.ID] = *doc
	return nil
}

func (r *MemoryRegistry) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

func (r *MemoryRegistry) List(ctx context.Context) ([]models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]models.Document, 0, len(r.docs))
	for _, d := range r.docs {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs, nil
}

func (r *MemoryRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *MemoryRegistry) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

func (r *MemoryRegistry) MarkCompleted(ctx context.Context, id uuid.UUID, chunkCount, pageCount int, fileSize int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.Status != models.DocStatusProcessing {
		return fmt.Errorf("mark completed %s: %w", id, ErrNotFound)
	}
	doc.Status = models.DocStatusCompleted
	doc.ChunkCount = &chunkCount
	doc.PageCount = pageCount
	doc.FileSizeBytes = fileSize
	r.docs[id] = doc
	return nil
}

func (r *MemoryRegistry) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok || doc.Status != models.DocStatusProcessing {
		return fmt.Errorf("mark failed %s: %w", id, ErrNotFound)
	}
	doc.Status = models.DocStatusFailed
	doc.ErrorMessage = reason
	r.docs[id] = doc
	return nil
}
