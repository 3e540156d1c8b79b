package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/docqa/docqa/internal/embedding"
	"github.com/docqa/docqa/internal/rag"
	"github.com/docqa/docqa/internal/registry"
)

type AskHandler struct {
	pipeline *rag.Pipeline
}

func NewAskHandler(p *rag.Pipeline) *AskHandler {
	return &AskHandler{pipeline: p}
}

type askRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id,omitempty"`
	MaxChunks  int    `json:"max_chunks,omitempty"`
}

func (req askRequest) toAnswerRequest() (rag.AnswerRequest, error) {
	out := rag.AnswerRequest{Question: req.Question, MaxChunks: req.MaxChunks}
	if req.DocumentID != "" {
		id, err := uuid.Parse(req.DocumentID)
		if err != nil {
			return out, errors.New("invalid document_id")
		}
		out.DocumentID = id
	}
	return out, nil
}

// Ask answers a question against the indexed documents.
func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	answerReq, err := req.toAnswerRequest()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.pipeline.Answer(r.Context(), answerReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Search exposes the raw scored candidates for a question, without
// answer synthesis.
func (h *AskHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	answerReq, err := req.toAnswerRequest()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	results, err := h.pipeline.Search(r.Context(), answerReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results, "count": len(results)})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, rag.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, registry.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, rag.ErrRetrievalTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, embedding.ErrEmbedding):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
