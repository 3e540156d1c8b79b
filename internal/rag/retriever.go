package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/vectorstore"
)

// Retriever embeds a question and fetches the nearest chunks from the
// store. Pure read path; safe for concurrent use.
type Retriever struct {
	store    vectorstore.VectorStore
	embedder embedding.Embedder
}

func NewRetriever(store vectorstore.VectorStore, embedder embedding.Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// Retrieve returns up to topK raw candidates, ascending by distance. A
// documentID of uuid.Nil searches all documents; an unknown documentID
// yields an empty result, not an error. Deadline expiry on either adapter
// call surfaces as ErrRetrievalTimeout.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int, documentID uuid.UUID) ([]vectorstore.Candidate, error) {
	queryVec, err := r.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, wrapDeadline("embed query", err)
	}

	candidates, err := r.store.Search(ctx, queryVec, vectorstore.SearchOptions{
		TopK:       topK,
		DocumentID: documentID,
	})
	if err != nil {
		return nil, wrapDeadline("search chunks", err)
	}
	return candidates, nil
}

func wrapDeadline(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w: %w", op, ErrRetrievalTimeout, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
