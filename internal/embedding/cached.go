package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/docqa/docqa/internal/cache"
)

// CachedEmbedder memoizes query embeddings in redis. Safe because
// embeddings are deterministic for a fixed model; a cache failure is never
// an error, just a miss.
type CachedEmbedder struct {
	inner Embedder
	cache *cache.Cache
	ttl   time.Duration
}

func NewCachedEmbedder(inner Embedder, c *cache.Cache, ttl time.Duration) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: c, ttl: ttl}
}

func (e *CachedEmbedder) Model() string  { return e.inner.Model() }
func (e *CachedEmbedder) Dimension() int { return e.inner.Dimension() }

// Embed passes through uncached: document ingestion runs once per chunk.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.inner.Embed(ctx, texts)
}

func (e *CachedEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	key := e.cacheKey(text)

	var cached []float32
	if err := e.cache.Get(ctx, key, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	vec, err := e.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}

	_ = e.cache.Set(ctx, key, vec, e.ttl)
	return vec, nil
}

func (e *CachedEmbedder) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(e.inner.Model() + "\x00" + text))
	return "embed:" + hex.EncodeToString(sum[:])
}
