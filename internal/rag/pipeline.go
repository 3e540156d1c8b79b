package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/vectorstore"
	"github.com/docqa/docqa/pkg/chunker"
)

// NoContextAnswer is the fixed reply when no chunk clears the similarity
// threshold. Confidence is forced to 0 and sources stay empty.
const NoContextAnswer = "I couldn't find any relevant information to answer your question."

const maxQuestionLen = 500

// Options configures the retrieval-and-answer pipeline. Zero values fall
// back to the documented defaults.
type Options struct {
	SimilarityThreshold float64
	MaxChunks           int // default result cap per query
	MaxChunksLimit      int // hard upper bound for per-request overrides
	ContextCharBudget   int
	ChunkSize           int
	ChunkOverlap        int
	SkillsVocabulary    []string
}

func (o Options) withDefaults() Options {
	if o.MaxChunks <= 0 {
		o.MaxChunks = 5
	}
	if o.MaxChunksLimit <= 0 {
		o.MaxChunksLimit = 10
	}
	if o.ContextCharBudget <= 0 {
		o.ContextCharBudget = 6000
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 1000
	}
	if o.ChunkOverlap < 0 {
		o.ChunkOverlap = 200
	}
	return o
}

// AnswerRequest is one question. DocumentID of uuid.Nil searches all
// documents; MaxChunks of 0 uses the configured default.
type AnswerRequest struct {
	Question   string
	DocumentID uuid.UUID
	MaxChunks  int
}

// AnswerResult is the pipeline's output: the synthesized answer, a [0,1]
// confidence, and the provenance of every chunk that fed the answer.
type AnswerResult struct {
	Answer     string     `json:"answer"`
	Confidence float64    `json:"confidence"`
	Intent     Intent     `json:"intent"`
	Sources    []Source   `json:"sources"`
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
}

// IngestRequest carries one extracted document's text into the store.
type IngestRequest struct {
	DocumentID uuid.UUID
	Filename   string
	Content    string
}

// Pipeline wires the embedding adapter, chunk store, ranker, context
// assembler, extraction engine, and confidence scorer. The query path is
// side-effect free and safe for concurrent use.
type Pipeline struct {
	store     vectorstore.VectorStore
	embedder  embedding.Embedder
	retriever *Retriever
	extractor *Extractor
	opts      Options
}

func NewPipeline(store vectorstore.VectorStore, embedder embedding.Embedder, opts Options) *Pipeline {
	opts = opts.withDefaults()
	return &Pipeline{
		store:     store,
		embedder:  embedder,
		retriever: NewRetriever(store, embedder),
		extractor: NewExtractor(opts.SkillsVocabulary),
		opts:      opts,
	}
}

// Options reports the effective configuration.
func (p *Pipeline) Options() Options { return p.opts }

// Answer runs the full question pipeline: validate, embed, retrieve,
// filter and rank, assemble context, classify intent, extract, score.
// Every call either yields an AnswerResult or a categorized error.
func (p *Pipeline) Answer(ctx context.Context, req AnswerRequest) (*AnswerResult, error) {
	maxChunks, err := p.validate(req)
	if err != nil {
		return nil, err
	}

	candidates, err := p.retriever.Retrieve(ctx, req.Question, maxChunks, req.DocumentID)
	if err != nil {
		return nil, err
	}

	ranked := Rank(candidates, p.opts.SimilarityThreshold, maxChunks)

	var docID *uuid.UUID
	if req.DocumentID != uuid.Nil {
		id := req.DocumentID
		docID = &id
	}

	if len(ranked) == 0 {
		return &AnswerResult{
			Answer:     NoContextAnswer,
			Confidence: 0,
			Intent:     ClassifyIntent(req.Question),
			Sources:    []Source{},
			DocumentID: docID,
		}, nil
	}

	assembled := AssembleContext(ranked, p.opts.ContextCharBudget)

	intent := ClassifyIntent(req.Question)
	extraction := p.extractor.Extract(intent, req.Question, assembled.Text, ranked[0].Content)

	return &AnswerResult{
		Answer:     extraction.Answer,
		Confidence: Confidence(ranked[0].Similarity, intent, extraction.Hit),
		Intent:     intent,
		Sources:    assembled.Sources,
		DocumentID: docID,
	}, nil
}

// Search exposes the scored candidate list without answer synthesis, for
// the debug search endpoint.
func (p *Pipeline) Search(ctx context.Context, req AnswerRequest) ([]ScoredCandidate, error) {
	maxChunks, err := p.validate(req)
	if err != nil {
		return nil, err
	}

	candidates, err := p.retriever.Retrieve(ctx, req.Question, maxChunks, req.DocumentID)
	if err != nil {
		return nil, err
	}
	return ScoreCandidates(candidates, p.opts.SimilarityThreshold), nil
}

// Ingest splits a document's text into chunks, embeds them, and writes
// them to the store in one batch. Returns the chunk count. Callers flip
// the registry status only after Ingest returns, so completed documents
// always have their chunks persisted.
func (p *Pipeline) Ingest(ctx context.Context, req IngestRequest) (int, error) {
	if strings.TrimSpace(req.Content) == "" {
		return 0, fmt.Errorf("no text to ingest: %w", ErrInvalidArgument)
	}

	pieces := chunker.Split(req.Content, chunker.Options{
		ChunkSize:    p.opts.ChunkSize,
		ChunkOverlap: p.opts.ChunkOverlap,
	})
	if len(pieces) == 0 {
		return 0, fmt.Errorf("no chunks produced: %w", ErrInvalidArgument)
	}

	texts := make([]string, len(pieces))
	for i, c := range pieces {
		texts[i] = c.Content
	}

	embeddings, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, wrapDeadline("embed chunks", err)
	}

	chunks := make([]vectorstore.Chunk, len(pieces))
	for i, c := range pieces {
		chunks[i] = vectorstore.Chunk{
			ID:         uuid.New(),
			DocumentID: req.DocumentID,
			ChunkIndex: c.Index,
			Content:    c.Content,
			Embedding:  embeddings[i],
			Filename:   req.Filename,
		}
	}

	if err := p.store.Upsert(ctx, chunks); err != nil {
		return 0, fmt.Errorf("store chunks: %w", err)
	}
	return len(chunks), nil
}

func (p *Pipeline) validate(req AnswerRequest) (int, error) {
	if strings.TrimSpace(req.Question) == "" {
		return 0, fmt.Errorf("question must not be empty: %w", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(req.Question) > maxQuestionLen {
		return 0, fmt.Errorf("question exceeds %d characters: %w", maxQuestionLen, ErrInvalidArgument)
	}

	maxChunks := req.MaxChunks
	switch {
	case maxChunks == 0:
		maxChunks = p.opts.MaxChunks
	case maxChunks < 1:
		return 0, fmt.Errorf("max_chunks must be >= 1: %w", ErrInvalidArgument)
	case maxChunks > p.opts.MaxChunksLimit:
		return 0, fmt.Errorf("max_chunks must be <= %d: %w", p.opts.MaxChunksLimit, ErrInvalidArgument)
	}
	return maxChunks, nil
}
