package rag

// strategyCertainty is a per-strategy constant reflecting how trustworthy
// a pattern hit is. Regex-anchored strategies score higher than the
// general fallback.
func strategyCertainty(intent Intent) float64 {
	switch intent {
	case IntentContact:
		return 0.9
	case IntentSkills:
		return 0.85
	case IntentName:
		return 0.8
	case IntentExperience, IntentEducation:
		return 0.7
	default:
		return 0.5
	}
}

const (
	similarityWeight = 0.6
	certaintyWeight  = 0.4

	// missPenalty halves a strategy's certainty when its pattern did not
	// match and it degraded to "not found" text.
	missPenalty = 0.5
)

// Confidence combines the top retrieval similarity with the extraction
// strategy's certainty. Monotonic in both inputs: raising either never
// lowers the result. Always in [0,1]; the no-context path bypasses this
// and forces 0.
func Confidence(topSimilarity float64, intent Intent, hit bool) float64 {
	certainty := strategyCertainty(intent)
	if !hit {
		certainty *= missPenalty
	}

	c := similarityWeight*topSimilarity + certaintyWeight*certainty
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
