package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is the registry record for one uploaded PDF.
type Document struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Filename      string    `json:"filename" db:"filename"`
	FilePath      string    `json:"file_path,omitempty" db:"file_path"`
	FileSizeBytes int64     `json:"file_size_bytes,omitempty" db:"file_size_bytes"`
	PageCount     int       `json:"page_count,omitempty" db:"page_count"`
	Status        string    `json:"status" db:"status"`
	ChunkCount    *int      `json:"chunk_count,omitempty" db:"chunk_count"`
	ErrorMessage  string    `json:"error_message,omitempty" db:"error_message"`
	UploadedAt    time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// Document statuses. Processing is the only non-terminal state; transitions
// are one-way (processing -> completed or processing -> failed).
const (
	DocStatusProcessing = "processing"
	DocStatusCompleted  = "completed"
	DocStatusFailed     = "failed"
)
