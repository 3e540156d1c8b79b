package handlers

import (
	"net/http"
	"time"

	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/rag"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/vectorstore"
)

type StatsHandler struct {
	reg      registry.Registry
	store    vectorstore.VectorStore
	embedder embedding.Embedder
	opts     rag.Options
	started  time.Time
}

func NewStatsHandler(reg registry.Registry, store vectorstore.VectorStore, embedder embedding.Embedder, opts rag.Options) *StatsHandler {
	return &StatsHandler{
		reg:      reg,
		store:    store,
		embedder: embedder,
		opts:     opts,
		started:  time.Now(),
	}
}

// Stats reports corpus-level counts, retrieval settings, and uptime.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	docCount, err := h.reg.Count(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	chunkCount, err := h.store.CountChunks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"documents":            docCount,
		"chunks":               chunkCount,
		"embedding_model":      h.embedder.Model(),
		"embedding_dimension":  h.embedder.Dimension(),
		"similarity_threshold": h.opts.SimilarityThreshold,
		"max_chunks":           h.opts.MaxChunks,
		"uptime_seconds":       int64(time.Since(h.started).Seconds()),
	})
}
