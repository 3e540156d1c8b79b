// Package textextract pulls plain text out of uploaded document bytes.
// PDF extraction is a black box from the pipeline's point of view: bytes
// in, text (or an error) out.
package textextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type ExtractedText struct {
	Content string
	Pages   int
}

// Extract dispatches on file type. Supported: PDF and plain text.
func Extract(data io.ReaderAt, size int64, fileType string) (*ExtractedText, error) {
	switch normalizeType(fileType) {
	case "pdf":
		return extractPDF(data, size)
	case "txt":
		return extractTXT(data, size)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func SupportedTypes() []string {
	return []string{".pdf", ".txt"}
}

// Validate reports whether the bytes parse as a PDF with at least one
// page.
func Validate(data io.ReaderAt, size int64) bool {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return false
	}
	return reader.NumPage() > 0
}

func normalizeType(fileType string) string {
	switch strings.ToLower(fileType) {
	case ".pdf", "pdf", "application/pdf":
		return "pdf"
	case ".txt", "txt", "text/plain":
		return "txt"
	default:
		return ""
	}
}

func extractPDF(data io.ReaderAt, size int64) (*ExtractedText, error) {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return nil, fmt.Errorf("no text could be extracted from PDF")
	}

	return &ExtractedText{Content: content, Pages: numPages}, nil
}

func extractTXT(data io.ReaderAt, size int64) (*ExtractedText, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read TXT: %w", err)
	}

	return &ExtractedText{
		Content: string(bytes.TrimSpace(buf)),
		Pages:   1,
	}, nil
}
