// Package chunker splits extracted document text into overlapping,
// bounded spans suitable for embedding and retrieval.
package chunker

import "strings"

type Options struct {
	ChunkSize    int // target chunk size in runes
	ChunkOverlap int // runes carried over between adjacent chunks
}

func DefaultOptions() Options {
	return Options{ChunkSize: 1000, ChunkOverlap: 200}
}

// Piece is one chunk with its position among the document's chunks.
type Piece struct {
	Content string
	Index   int
}

// breakPoints, in preference order, mark where a chunk may end early so
// splits land on paragraph, line, or word boundaries instead of inside a
// word.
var breakPoints = []string{"\n\n", "\n", " "}

// Split cuts text into chunks of at most ChunkSize runes with
// ChunkOverlap runes of lookback between neighbors. Whitespace-only
// spans are dropped; indexes stay contiguous from 0.
func Split(text string, opts Options) []Piece {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 1000
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}

	runes := []rune(text)
	var pieces []Piece

	for start := 0; start < len(runes); {
		end := start + opts.ChunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakAt(runes, start, end)
		}

		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			pieces = append(pieces, Piece{Content: content, Index: len(pieces)})
		}

		if end == len(runes) {
			break
		}
		next := end - opts.ChunkOverlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return pieces
}

// breakAt searches the tail of the window for the best boundary to end
// the chunk on, falling back to a hard cut when none is found.
func breakAt(runes []rune, start, end int) int {
	window := string(runes[start:end])
	// Only look in the last quarter of the window so chunks stay near
	// their target size.
	floor := len(window) - len(window)/4

	for _, sep := range breakPoints {
		if i := strings.LastIndex(window, sep); i >= floor {
			return start + len([]rune(window[:i+len(sep)]))
		}
	}
	return end
}
