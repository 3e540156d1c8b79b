package rag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceBounds(t *testing.T) {
	for _, intent := range []Intent{IntentName, IntentContact, IntentSkills, IntentExperience, IntentEducation, IntentGeneral} {
		for _, sim := range []float64{0, 0.25, 0.5, 1} {
			for _, hit := range []bool{true, false} {
				c := Confidence(sim, intent, hit)
				assert.GreaterOrEqual(t, c, 0.0)
				assert.LessOrEqual(t, c, 1.0)
			}
		}
	}
}

func TestConfidenceValues(t *testing.T) {
	// similarity weight 0.6, certainty weight 0.4
	assert.InDelta(t, 0.96, Confidence(1.0, IntentContact, true), 1e-9)
	assert.InDelta(t, 0.2, Confidence(0, IntentGeneral, true), 1e-9)
	assert.InDelta(t, 0.6+0.4*0.8, Confidence(1.0, IntentName, true), 1e-9)
}

func TestConfidenceMonotonicInSimilarity(t *testing.T) {
	prev := -1.0
	for sim := 0.0; sim <= 1.0; sim += 0.1 {
		c := Confidence(sim, IntentSkills, true)
		assert.Greater(t, c, prev)
		prev = c
	}
}

func TestConfidenceMissLowersScore(t *testing.T) {
	for _, intent := range []Intent{IntentName, IntentContact, IntentSkills, IntentExperience, IntentEducation} {
		hit := Confidence(0.7, intent, true)
		miss := Confidence(0.7, intent, false)
		assert.Greater(t, hit, miss, "intent %s", intent)
	}
}

func TestConfidenceStrategyOrdering(t *testing.T) {
	// At equal similarity, the anchored strategies outrank the general
	// fallback.
	sim := 0.5
	general := Confidence(sim, IntentGeneral, true)
	for _, intent := range []Intent{IntentName, IntentContact, IntentSkills, IntentExperience, IntentEducation} {
		assert.Greater(t, Confidence(sim, intent, true), general)
	}
}
