package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process VectorStore with exact cosine-distance
// search. It backs tests and local development without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	chunks map[uuid.UUID]Chunk
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{chunks: make(map[uuid.UUID]Chunk)}
}

func (s *MemoryStore) Upsert(ctx context.Context, chunks []Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.chunks[c.ID] = c
	}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, query []float32, opts SearchOptions) ([]Candidate, error) {
	if opts.TopK < 1 {
		return nil, ErrInvalidTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []Candidate
	for _, c := range s.chunks {
		if opts.DocumentID != uuid.Nil && c.DocumentID != opts.DocumentID {
			continue
		}
		results = append(results, Candidate{
			ChunkID:    c.ID,
			DocumentID: c.DocumentID,
			Content:    c.Content,
			Filename:   c.Filename,
			ChunkIndex: c.ChunkIndex,
			Distance:   cosineDistance(query, c.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	return results, nil
}

func (s *MemoryStore) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.chunks {
		if c.DocumentID == documentID {
			delete(s.chunks, id)
		}
	}
	return nil
}

func (s *MemoryStore) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var chunks []Chunk
	for _, c := range s.chunks {
		if c.DocumentID == documentID {
			chunks = append(chunks, c)
		}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkIndex < chunks[j].ChunkIndex })
	return chunks, nil
}

func (s *MemoryStore) CountChunks(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.chunks)), nil
}

// cosineDistance matches pgvector's <=> operator: 1 - cosine similarity,
// in [0,2]. Zero vectors are treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 2
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
