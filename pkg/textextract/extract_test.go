package textextract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTXT(t *testing.T) {
	data := []byte("  hello world\nsecond line  \n")
	got, err := Extract(bytes.NewReader(data), int64(len(data)), ".txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond line", got.Content)
	assert.Equal(t, 1, got.Pages)
}

func TestExtractTXTByMIMEType(t *testing.T) {
	data := []byte("plain body")
	got, err := Extract(bytes.NewReader(data), int64(len(data)), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "plain body", got.Content)
}

func TestExtractUnsupportedType(t *testing.T) {
	data := []byte("whatever")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), ".docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestExtractInvalidPDF(t *testing.T) {
	data := []byte("this is not a pdf")
	_, err := Extract(bytes.NewReader(data), int64(len(data)), ".pdf")
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	data := []byte("%PDF-garbage that does not parse")
	assert.False(t, Validate(bytes.NewReader(data), int64(len(data))))
}

func TestSupportedTypes(t *testing.T) {
	assert.Equal(t, []string{".pdf", ".txt"}, SupportedTypes())
}
