package rag

import (
	"strings"

	"github.com/google/uuid"
)

// chunkDelimiter separates chunks in the assembled context so extraction
// can still see chunk boundaries.
const chunkDelimiter = "\n\n"

const excerptLimit = 200

// Source records the provenance of one chunk that contributed to an
// answer.
type Source struct {
	ChunkID    uuid.UUID `json:"chunk_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	Excerpt    string    `json:"excerpt"`
	Similarity float64   `json:"similarity"`
}

// AssembledContext is the concatenated text of the ranked chunks plus the
// provenance trail, in rank order.
type AssembledContext struct {
	Text    string
	Sources []Source
}

// AssembleContext joins candidate texts in ranked order up to charBudget
// characters. When the budget would be exceeded it drops the lowest-ranked
// chunks whole; it never truncates inside a chunk. The top-ranked chunk is
// always kept so a non-empty candidate set yields a non-empty context.
func AssembleContext(candidates []ScoredCandidate, charBudget int) AssembledContext {
	var (
		parts   []string
		sources []Source
		total   int
	)

	for i, c := range candidates {
		cost := len(c.Content)
		if i > 0 {
			cost += len(chunkDelimiter)
		}
		if charBudget > 0 && i > 0 && total+cost > charBudget {
			break
		}

		parts = append(parts, c.Content)
		sources = append(sources, Source{
			ChunkID:    c.ChunkID,
			DocumentID: c.DocumentID,
			Filename:   c.Filename,
			Excerpt:    excerpt(c.Content),
			Similarity: c.Similarity,
		})
		total += cost
	}

	return AssembledContext{
		Text:    strings.Join(parts, chunkDelimiter),
		Sources: sources,
	}
}

func excerpt(content string) string {
	truncated := truncateRunes(content, excerptLimit)
	if truncated == content {
		return content
	}
	return truncated + "..."
}
