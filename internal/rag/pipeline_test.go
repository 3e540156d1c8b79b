package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa/docqa/internal/vectorstore"
)

// fakeEmbedder maps keyword buckets onto fixed vectors so retrieval
// behaves deterministically without a real embedding service.
type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Model() string  { return "fake" }
func (f *fakeEmbedder) Dimension() int { return 3 }

func (f *fakeEmbedder) vector(text string) []float32 {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "jane") || strings.Contains(lower, "contact") || strings.Contains(lower, "email"):
		return []float32{1, 0, 0}
	case strings.Contains(lower, "weather"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = f.vector(t)
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(text), nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *vectorstore.MemoryStore) {
	t.Helper()
	store := vectorstore.NewMemoryStore()
	p := NewPipeline(store, &fakeEmbedder{}, Options{SimilarityThreshold: 0.1})
	return p, store
}

const resumeText = "Jane Doe is a software engineer. Email: jane.doe@example.com Phone: 555-123-4567"

func ingestDoc(t *testing.T, p *Pipeline, content string) uuid.UUID {
	t.Helper()
	docID := uuid.New()
	n, err := p.Ingest(context.Background(), IngestRequest{
		DocumentID: docID,
		Filename:   "doc.pdf",
		Content:    content,
	})
	require.NoError(t, err)
	require.Greater(t, n, 0)
	return docID
}

func TestPipelineAnswerContact(t *testing.T) {
	p, _ := newTestPipeline(t)
	docID := ingestDoc(t, p, resumeText)

	result, err := p.Answer(context.Background(), AnswerRequest{Question: "What is the contact email?"})
	require.NoError(t, err)

	assert.Equal(t, IntentContact, result.Intent)
	assert.Equal(t, "Contact information: Email: jane.doe@example.com, Phone: (555) 123-4567.", result.Answer)
	assert.InDelta(t, 0.96, result.Confidence, 1e-6)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, docID, result.Sources[0].DocumentID)
	assert.Nil(t, result.DocumentID)
}

func TestPipelineAnswerNoContext(t *testing.T) {
	p, _ := newTestPipeline(t)

	result, err := p.Answer(context.Background(), AnswerRequest{Question: "What is the contact email?"})
	require.NoError(t, err)

	assert.Equal(t, NoContextAnswer, result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, IntentContact, result.Intent)
	assert.Empty(t, result.Sources)
}

func TestPipelineAnswerBelowThresholdIsNoContext(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	p := NewPipeline(store, &fakeEmbedder{}, Options{SimilarityThreshold: 0.1})

	// An opposing vector gives cosine distance 2, similarity 0.
	require.NoError(t, store.Upsert(context.Background(), []vectorstore.Chunk{{
		ID:         uuid.New(),
		DocumentID: uuid.New(),
		Content:    "unrelated",
		Embedding:  []float32{-1, 0, 0},
		Filename:   "other.pdf",
	}}))

	result, err := p.Answer(context.Background(), AnswerRequest{Question: "contact?"})
	require.NoError(t, err)
	assert.Equal(t, NoContextAnswer, result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestPipelineAnswerDocumentFilter(t *testing.T) {
	p, _ := newTestPipeline(t)
	contactDoc := ingestDoc(t, p, resumeText)
	ingestDoc(t, p, "today the weather is sunny with light wind")

	result, err := p.Answer(context.Background(), AnswerRequest{
		Question:   "What is the contact email?",
		DocumentID: contactDoc,
	})
	require.NoError(t, err)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, contactDoc, result.Sources[0].DocumentID)
	require.NotNil(t, result.DocumentID)
	assert.Equal(t, contactDoc, *result.DocumentID)
}

func TestPipelineAnswerUnknownDocumentIsNoContext(t *testing.T) {
	p, _ := newTestPipeline(t)
	ingestDoc(t, p, resumeText)

	result, err := p.Answer(context.Background(), AnswerRequest{
		Question:   "What is the contact email?",
		DocumentID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, NoContextAnswer, result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestPipelineAnswerValidation(t *testing.T) {
	p, _ := newTestPipeline(t)

	tests := []struct {
		name string
		req  AnswerRequest
	}{
		{"empty question", AnswerRequest{Question: "   "}},
		{"question too long", AnswerRequest{Question: strings.Repeat("q", 501)}},
		{"max chunks negative", AnswerRequest{Question: "ok?", MaxChunks: -1}},
		{"max chunks above limit", AnswerRequest{Question: "ok?", MaxChunks: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Answer(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPipelineAnswerQuestionAtMaxLength(t *testing.T) {
	p, _ := newTestPipeline(t)
	ingestDoc(t, p, resumeText)

	_, err := p.Answer(context.Background(), AnswerRequest{Question: strings.Repeat("q", 500)})
	assert.NoError(t, err)
}

func TestPipelineAnswerEmbedderTimeout(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	p := NewPipeline(store, &fakeEmbedder{err: context.DeadlineExceeded}, Options{})

	_, err := p.Answer(context.Background(), AnswerRequest{Question: "anything?"})
	assert.ErrorIs(t, err, ErrRetrievalTimeout)
}

func TestPipelineSearchReportsRejectedCandidates(t *testing.T) {
	store := vectorstore.NewMemoryStore()
	p := NewPipeline(store, &fakeEmbedder{}, Options{SimilarityThreshold: 0.6})

	require.NoError(t, store.Upsert(context.Background(), []vectorstore.Chunk{
		{ID: uuid.New(), DocumentID: uuid.New(), Content: "contact info", Embedding: []float32{1, 0, 0}},
		{ID: uuid.New(), DocumentID: uuid.New(), Content: "off topic", Embedding: []float32{0, 1, 0}},
	}))

	results, err := p.Search(context.Background(), AnswerRequest{Question: "contact?"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Accepted)
	assert.False(t, results[1].Accepted)
}

func TestPipelineIngestRejectsEmptyContent(t *testing.T) {
	p, _ := newTestPipeline(t)

	_, err := p.Ingest(context.Background(), IngestRequest{
		DocumentID: uuid.New(),
		Filename:   "empty.pdf",
		Content:    "   \n\t  ",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPipelineIngestThenChunksListed(t *testing.T) {
	p, store := newTestPipeline(t)
	docID := ingestDoc(t, p, resumeText)

	chunks, err := store.ListByDocument(context.Background(), docID)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].ChunkIndex)
	assert.Equal(t, "doc.pdf", chunks[0].Filename)
}
