package queue

const (
	TypeDocumentProcess = "document:process"
)

type DocumentProcessPayload struct {
	DocumentID string `json:"document_id"`
}
