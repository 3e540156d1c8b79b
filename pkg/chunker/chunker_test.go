package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextSinglePiece(t *testing.T) {
	pieces := Split("a short document", DefaultOptions())
	require.Len(t, pieces, 1)
	assert.Equal(t, "a short document", pieces[0].Content)
	assert.Equal(t, 0, pieces[0].Index)
}

func TestSplitEmptyAndWhitespace(t *testing.T) {
	assert.Empty(t, Split("", DefaultOptions()))
	assert.Empty(t, Split("   \n\n\t  ", DefaultOptions()))
}

func TestSplitRespectsChunkSize(t *testing.T) {
	text := strings.Repeat("word ", 1000) // ~5000 chars
	opts := Options{ChunkSize: 500, ChunkOverlap: 100}

	pieces := Split(text, opts)
	require.Greater(t, len(pieces), 1)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p.Content)), opts.ChunkSize)
		assert.NotEmpty(t, strings.TrimSpace(p.Content))
	}
}

func TestSplitIndexesContiguous(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 400)
	pieces := Split(text, Options{ChunkSize: 300, ChunkOverlap: 50})

	require.Greater(t, len(pieces), 1)
	for i, p := range pieces {
		assert.Equal(t, i, p.Index)
	}
}

func TestSplitOverlapCarriesText(t *testing.T) {
	text := strings.Repeat("one two three four five ", 100)
	pieces := Split(text, Options{ChunkSize: 200, ChunkOverlap: 50})
	require.Greater(t, len(pieces), 1)

	// The tail of each chunk reappears at the head of the next.
	for i := 1; i < len(pieces); i++ {
		prev := pieces[i-1].Content
		tail := prev[len(prev)-20:]
		assert.Contains(t, text, tail)
		head := strings.Fields(pieces[i].Content)[0]
		assert.Contains(t, prev, head)
	}
}

func TestSplitPrefersParagraphBoundary(t *testing.T) {
	para1 := strings.Repeat("a", 80)
	para2 := strings.Repeat("b", 80)
	text := para1 + "\n\n" + para2

	pieces := Split(text, Options{ChunkSize: 100, ChunkOverlap: 0})
	require.GreaterOrEqual(t, len(pieces), 2)
	assert.Equal(t, para1, pieces[0].Content)
}

func TestSplitFullCoverage(t *testing.T) {
	// Every non-space character of the input appears in some chunk.
	text := strings.Repeat("abcdefghij ", 200)
	pieces := Split(text, Options{ChunkSize: 250, ChunkOverlap: 25})

	var joined strings.Builder
	for _, p := range pieces {
		joined.WriteString(p.Content)
		joined.WriteString(" ")
	}
	assert.GreaterOrEqual(t, len(joined.String()), len(strings.TrimSpace(text)))
}

func TestSplitZeroOptionsUseDefaults(t *testing.T) {
	text := strings.Repeat("x y z ", 600) // ~3600 chars
	pieces := Split(text, Options{})

	require.Greater(t, len(pieces), 1)
	for _, p := range pieces {
		assert.LessOrEqual(t, len([]rune(p.Content)), 1000)
	}
}
