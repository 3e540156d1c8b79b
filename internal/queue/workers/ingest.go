// Package workers holds asynq task handlers run by the worker process.
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/docqa/docqa/internal/models"
	"github.com/docqa/docqa/internal/queue"
	"github.com/docqa/docqa/internal/rag"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/storage"
	"github.com/docqa/docqa/internal/vectorstore"
	"github.com/docqa/docqa/pkg/textextract"
)

// IngestWorker turns an uploaded file into searchable chunks: read the
// stored file, extract its text, chunk and embed through the pipeline,
// then mark the document completed. Any failure marks the document
// failed and cleans up chunks written before the failure.
type IngestWorker struct {
	reg      registry.Registry
	store    vectorstore.VectorStore
	files    storage.Storage
	pipeline *rag.Pipeline
}

func NewIngestWorker(reg registry.Registry, store vectorstore.VectorStore, files storage.Storage, pipeline *rag.Pipeline) *IngestWorker {
	return &IngestWorker{
		reg:      reg,
		store:    store,
		files:    files,
		pipeline: pipeline,
	}
}

func (w *IngestWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DocumentProcessPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	slog.Info("ingesting document", "document_id", docID)

	doc, err := w.reg.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			// Deleted between upload and processing. Nothing to do.
			slog.Warn("document vanished before ingestion", "document_id", docID)
			return nil
		}
		return fmt.Errorf("get document: %w", err)
	}

	if doc.Status != models.DocStatusProcessing {
		// A retried task after MarkCompleted/MarkFailed; the status
		// machine is one-way, so there is nothing left to do.
		slog.Info("skipping document in terminal state", "document_id", docID, "status", doc.Status)
		return nil
	}

	if err := w.ingest(ctx, doc.ID, doc.Filename, doc.FilePath); err != nil {
		w.fail(ctx, docID, err)
		return fmt.Errorf("ingest document %s: %w", docID, err)
	}

	return nil
}

func (w *IngestWorker) ingest(ctx context.Context, docID uuid.UUID, filename, path string) error {
	f, err := w.files.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	extracted, err := textextract.Extract(f, info.Size(), filepath.Ext(filename))
	if err != nil {
		return err
	}

	chunkCount, err := w.pipeline.Ingest(ctx, rag.IngestRequest{
		DocumentID: docID,
		Filename:   filename,
		Content:    extracted.Content,
	})
	if err != nil {
		return err
	}

	if err := w.reg.MarkCompleted(ctx, docID, chunkCount, extracted.Pages, info.Size()); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	slog.Info("document ingested",
		"document_id", docID,
		"chunks", chunkCount,
		"pages", extracted.Pages,
	)
	return nil
}

// fail records the failure reason and removes any chunks the failed
// attempt left behind so a failed document never answers queries.
func (w *IngestWorker) fail(ctx context.Context, docID uuid.UUID, cause error) {
	if err := w.store.DeleteByDocument(ctx, docID); err != nil {
		slog.Error("cleanup chunks after failed ingestion", "document_id", docID, "error", err)
	}
	if err := w.reg.MarkFailed(ctx, docID, cause.Error()); err != nil && !errors.Is(err, registry.ErrNotFound) {
		slog.Error("mark document failed", "document_id", docID, "error", err)
	}
}
