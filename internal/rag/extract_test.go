package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNameFromSpacedHeader(t *testing.T) {
	e := NewExtractor(nil)
	context := "J O H N S M I T H\nSoftware Developer\njohn@example.com"

	got := e.Extract(IntentName, "What is the name?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "The person's name is JOHN SMITH.", got.Answer)
}

func TestExtractNameFromEmailPrefix(t *testing.T) {
	e := NewExtractor(nil)
	context := "Contact: jane.doe@example.com for details"

	got := e.Extract(IntentName, "What is the name?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "Based on the email address, the person might be Jane Doe.", got.Answer)
}

func TestExtractNameFromCapitalizedPair(t *testing.T) {
	e := NewExtractor(nil)
	context := "resume of Jane Doe\nworked on various projects"

	got := e.Extract(IntentName, "Who is this?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "The person's name appears to be Jane Doe.", got.Answer)
}

func TestExtractNameSkipsHeadingWords(t *testing.T) {
	e := NewExtractor(nil)
	context := "Frontend Developer\nreal person Alice Walker listed below"

	got := e.Extract(IntentName, "What is the name?", context, context)
	assert.True(t, got.Hit)
	assert.Contains(t, got.Answer, "Alice Walker")
	assert.NotContains(t, got.Answer, "Frontend")
}

func TestExtractNameMiss(t *testing.T) {
	e := NewExtractor(nil)
	context := "nothing identifying here, just prose about weather"

	got := e.Extract(IntentName, "What is the name?", context, context)
	assert.False(t, got.Hit)
	assert.Contains(t, got.Answer, "not clearly stated")
}

func TestExtractContact(t *testing.T) {
	e := NewExtractor(nil)
	context := "Reach me at jane@example.com or 555-123-4567 any time"

	got := e.Extract(IntentContact, "What is the contact info?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "Contact information: Email: jane@example.com, Phone: (555) 123-4567.", got.Answer)
}

func TestExtractContactEmailOnly(t *testing.T) {
	e := NewExtractor(nil)
	context := "Email bob_smith@corp.io for questions"

	got := e.Extract(IntentContact, "email?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "Contact information: Email: bob_smith@corp.io.", got.Answer)
}

func TestExtractContactParenthesizedPhone(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract(IntentContact, "phone?", "Call (555) 123-4567 today", "")
	assert.True(t, got.Hit)
	assert.Contains(t, got.Answer, "(555) 123-4567")
}

func TestExtractContactIgnoresLongDigitRuns(t *testing.T) {
	e := NewExtractor(nil)
	// A 13-digit identifier is not a phone number; no 10-digit slice of
	// it may be extracted as one.
	got := e.Extract(IntentContact, "contact?", "order ref 1234567890123 filed", "")
	assert.False(t, got.Hit)
	assert.Contains(t, got.Answer, "No contact details found")
}

func TestExtractContactMiss(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract(IntentContact, "contact?", "no reachable details in this text", "")
	assert.False(t, got.Hit)
	assert.Contains(t, got.Answer, "No contact details found")
}

func TestExtractSkillsOrderedByAppearance(t *testing.T) {
	e := NewExtractor(nil)
	context := "Built services in Docker and python, deployed on AWS with docker again"

	got := e.Extract(IntentSkills, "What skills?", context, context)
	assert.True(t, got.Hit)
	// Vocabulary casing in output, ordered by first occurrence, deduplicated.
	assert.Equal(t, "Technical skills mentioned: Docker, Python, AWS.", got.Answer)
}

func TestExtractSkillsCustomVocabulary(t *testing.T) {
	e := NewExtractor([]string{"Terraform", "Ansible"})
	context := "Provisioned with terraform, no java mentioned as far as the vocab goes"

	got := e.Extract(IntentSkills, "skills?", context, context)
	assert.True(t, got.Hit)
	assert.Equal(t, "Technical skills mentioned: Terraform.", got.Answer)
}

func TestExtractSkillsMiss(t *testing.T) {
	e := NewExtractor([]string{"Fortran"})
	got := e.Extract(IntentSkills, "skills?", "gardening and cooking", "")
	assert.False(t, got.Hit)
	assert.Contains(t, got.Answer, "No listed skills matched")
}

func TestExtractExperienceYearSpanAndRoles(t *testing.T) {
	e := NewExtractor(nil)
	context := "Senior engineer at Acme 2015 to 2019, then manager from 2020"

	got := e.Extract(IntentExperience, "experience?", context, context)
	assert.True(t, got.Hit)
	assert.Contains(t, got.Answer, "2015-2020")
	assert.Contains(t, got.Answer, "engineer")
	assert.Contains(t, got.Answer, "manager")
}

func TestExtractExperienceMiss(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract(IntentExperience, "experience?", "a text with no dates or titles", "")
	assert.False(t, got.Hit)
	assert.Contains(t, got.Answer, "Regarding work experience")
}

func TestExtractEducationCollectsMatchingLines(t *testing.T) {
	e := NewExtractor(nil)
	context := "Jane Doe\nBachelor of Science, State University\nlikes hiking\nGraduated 2018"

	got := e.Extract(IntentEducation, "education?", context, context)
	assert.True(t, got.Hit)
	assert.Contains(t, got.Answer, "Bachelor of Science, State University")
	assert.Contains(t, got.Answer, "Graduated 2018")
	assert.NotContains(t, got.Answer, "hiking")
}

func TestExtractEducationMiss(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Extract(IntentEducation, "education?", "no academic background given", "")
	assert.False(t, got.Hit)
}

func TestExtractGeneralPrefixByQuestionWord(t *testing.T) {
	e := NewExtractor(nil)
	best := "the elevator pitch"

	tests := []struct {
		question string
		prefix   string
	}{
		{"what is this about", "According to the document: "},
		{"how does it work", "The document explains: "},
		{"why was it built", "The document indicates: "},
		{"summarize it", "Based on the document: "},
	}
	for _, tt := range tests {
		got := e.Extract(IntentGeneral, tt.question, "", best)
		require.True(t, got.Hit)
		assert.Equal(t, tt.prefix+best, got.Answer, "question: %q", tt.question)
	}
}

func TestExtractMissTruncatesLongContext(t *testing.T) {
	e := NewExtractor(nil)
	context := strings.Repeat("x", 500)

	got := e.Extract(IntentName, "name?", context, context)
	assert.False(t, got.Hit)
	assert.Less(t, len(got.Answer), 300)
}
