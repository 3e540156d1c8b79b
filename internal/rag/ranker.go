package rag

import (
	"sort"

	"github.com/docqa/docqa/internal/vectorstore"
)

// ScoredCandidate is a retrieval hit with its distance converted to a
// normalized similarity and the result of threshold filtering.
type ScoredCandidate struct {
	vectorstore.Candidate
	Similarity float64 `json:"similarity"`
	Accepted   bool    `json:"accepted"`
}

// SimilarityFromDistance maps cosine distance (as returned by the store,
// in [0,2]) onto a [0,1] similarity: 1 - d/2, floored at 0. Monotonic:
// smaller distance always means higher similarity.
func SimilarityFromDistance(distance float64) float64 {
	sim := 1 - distance/2
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// ScoreCandidates converts every candidate's distance to a similarity and
// marks which ones clear the threshold. Input order is preserved.
func ScoreCandidates(candidates []vectorstore.Candidate, threshold float64) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		sim := SimilarityFromDistance(c.Distance)
		scored[i] = ScoredCandidate{
			Candidate:  c,
			Similarity: sim,
			Accepted:   sim >= threshold,
		}
	}
	return scored
}

// Rank filters candidates below the similarity threshold, sorts survivors
// by similarity descending (stable, so the adapter's order breaks ties),
// and truncates to maxChunks. Filter first, then truncate. An empty result
// is a normal outcome, not an error.
func Rank(candidates []vectorstore.Candidate, threshold float64, maxChunks int) []ScoredCandidate {
	scored := ScoreCandidates(candidates, threshold)

	accepted := scored[:0:0]
	for _, s := range scored {
		if s.Accepted {
			accepted = append(accepted, s)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Similarity > accepted[j].Similarity
	})

	if maxChunks > 0 && len(accepted) > maxChunks {
		accepted = accepted[:maxChunks]
	}
	return accepted
}
