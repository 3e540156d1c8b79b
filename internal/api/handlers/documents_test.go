package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa/docqa/internal/config"
	"github.com/docqa/docqa/internal/queue"
	"github.com/docqa/docqa/internal/registry"
	"github.com/docqa/docqa/internal/storage"
	"github.com/docqa/docqa/internal/vectorstore"
)

func newDocumentHandler(t *testing.T) *DocumentHandler {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	// The client never dials until an enqueue; rejection paths stop
	// before that.
	qc := queue.NewClient(config.RedisConfig{Addr: "localhost:0"})
	return NewDocumentHandler(registry.NewMemoryRegistry(), vectorstore.NewMemoryStore(), files, qc, 1<<20)
}

func multipartUpload(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRejectsInvalidPDF(t *testing.T) {
	h := newDocumentHandler(t)
	rec := httptest.NewRecorder()

	h.Upload(rec, multipartUpload(t, "broken.pdf", []byte("this is not a pdf")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or empty PDF")
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	h := newDocumentHandler(t)
	rec := httptest.NewRecorder()

	h.Upload(rec, multipartUpload(t, "report.docx", []byte("contents")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestUploadRequiresFile(t *testing.T) {
	h := newDocumentHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file required")
}

func TestGetInvalidID(t *testing.T) {
	h := newDocumentHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
