package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/models"
	"github.com/docqa/docqa/internal/queue"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/storage"
	"github.com/docqa/docqa/internal/vectorstore"
	"github.com/docqa/docqa/pkg/textextract"
)

type DocumentHandler struct {
	reg          registry.Registry
	store        vectorstore.VectorStore
	files        storage.Storage
	queueClient  *queue.Client
	maxFileBytes int64
}

func NewDocumentHandler(reg registry.Registry, store vectorstore.VectorStore, files storage.Storage, qc *queue.Client, maxFileBytes int64) *DocumentHandler {
	return &DocumentHandler{
		reg:          reg,
		store:        store,
		files:        files,
		queueClient:  qc,
		maxFileBytes: maxFileBytes,
	}
}

// Upload accepts a multipart file, records it as processing, stores the
// bytes, and enqueues ingestion. Extraction and embedding happen in the
// worker; the response is 202 with the processing record.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileBytes)
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	if header.Size > h.maxFileBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supportedExt(ext) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unsupported file type, expected one of: " + strings.Join(textextract.SupportedTypes(), ", "),
		})
		return
	}
	if ext == ".pdf" && !textextract.Validate(file, header.Size) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid or empty PDF"})
		return
	}

	doc := &models.Document{
		ID:            uuid.New(),
		Filename:      header.Filename,
		FileSizeBytes: header.Size,
		Status:        models.DocStatusProcessing,
	}

	path, err := h.files.Save(doc.ID, header.Filename, file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	doc.FilePath = path

	if err := h.reg.Create(r.Context(), doc); err != nil {
		h.files.Delete(path)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := h.queueClient.EnqueueDocumentProcess(queue.DocumentProcessPayload{
		DocumentID: doc.ID.String(),
	}); err != nil {
		h.reg.MarkFailed(r.Context(), doc.ID, "failed to enqueue processing")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to enqueue processing"})
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.reg.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs, "count": len(docs)})
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.reg.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.reg.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]interface{}{"id": doc.ID.String(), "status": doc.Status}
	if doc.ChunkCount != nil {
		resp["chunk_count"] = *doc.ChunkCount
	}
	if doc.ErrorMessage != "" {
		resp["error_message"] = doc.ErrorMessage
	}

	writeJSON(w, http.StatusOK, resp)
}

// Delete removes the registry record, its chunks, and the stored file.
// Chunks go first so a half-deleted document can never answer queries.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	doc, err := h.reg.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := h.store.DeleteByDocument(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.reg.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	if doc.FilePath != "" {
		if err := h.files.Delete(doc.FilePath); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Chunks returns a document's stored chunks, for inspection. Embeddings
// are omitted.
func (h *DocumentHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if _, err := h.reg.GetByID(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	chunks, err := h.store.ListByDocument(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	type chunkView struct {
		ID         uuid.UUID `json:"id"`
		ChunkIndex int       `json:"chunk_index"`
		Content    string    `json:"content"`
	}
	views := make([]chunkView, len(chunks))
	for i, c := range chunks {
		views[i] = chunkView{ID: c.ID, ChunkIndex: c.ChunkIndex, Content: c.Content}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"chunks": views, "count": len(views)})
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return uuid.Nil, false
	}
	return id, true
}

func supportedExt(ext string) bool {
	for _, s := range textextract.SupportedTypes() {
		if ext == s {
			return true
		}
	}
	return false
}
