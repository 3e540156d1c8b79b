package rag

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// DefaultSkillsVocabulary is the stock technology vocabulary the skills
// strategy matches against when no custom vocabulary is configured.
func DefaultSkillsVocabulary() []string {
	return []string{
		"Python", "Java", "JavaScript", "React", "Node", "SQL", "AWS",
		"Docker", "Kubernetes", "Git", "Linux", "MongoDB", "PostgreSQL",
		"HTML", "CSS", "Angular", "Vue", "Django", "Flask", "Spring",
	}
}

var (
	emailRe       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	emailPrefixRe = regexp.MustCompile(`\b([A-Za-z0-9._%+-]+)@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe       = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?\b([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})\b`)
	spacedNameRe  = regexp.MustCompile(`^([A-Z]\s+)+[A-Z]\b`)
	fullNameRe    = regexp.MustCompile(`\b[A-Z][a-z]{2,}\s+[A-Z][a-z]{2,}\b`)
	yearRe        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// nameStopwords are resume headings that match the First Last shape but
// are never personal names.
var nameStopwords = []string{
	"FRONTEND", "DEVELOPER", "PROFILE", "CONTACT", "EDUCATION", "EXPERIENCE",
	"SKILLS", "PROJECT", "COLLEGE", "SCHOOL", "COMPANY", "GMAIL", "YAHOO",
}

var roleKeywords = []string{
	"developer", "engineer", "manager", "analyst", "consultant",
	"specialist", "coordinator", "director", "lead", "senior",
}

var educationKeywords = []string{
	"university", "college", "degree", "bachelor", "master", "phd",
	"graduation", "graduated", "school", "education",
}

// Extraction is the outcome of one strategy run. Hit reports whether the
// strategy's pattern actually matched; a miss still produces usable
// "not found" text, never an error.
type Extraction struct {
	Intent Intent
	Answer string
	Hit    bool
}

// Extractor applies the per-intent extraction strategies to assembled
// context text.
type Extractor struct {
	skillsVocab []string
}

func NewExtractor(skillsVocab []string) *Extractor {
	if len(skillsVocab) == 0 {
		skillsVocab = DefaultSkillsVocabulary()
	}
	return &Extractor{skillsVocab: skillsVocab}
}

// Extract dispatches to the strategy for the resolved intent. bestChunk is
// the top-ranked chunk's full text, used by the general fallback.
func (e *Extractor) Extract(intent Intent, question, context, bestChunk string) Extraction {
	switch intent {
	case IntentName:
		return e.extractName(context)
	case IntentContact:
		return e.extractContact(context)
	case IntentSkills:
		return e.extractSkills(context)
	case IntentExperience:
		return e.extractExperience(context)
	case IntentEducation:
		return e.extractEducation(context)
	default:
		return e.extractGeneral(question, bestChunk)
	}
}

// extractName looks for a personal name near the start of the context:
// first a spaced capital-letter header (e.g. "J A N E  D O E"), then an
// email prefix, then a capitalized First Last pair in the first 300
// characters.
func (e *Extractor) extractName(context string) Extraction {
	lines := strings.Split(context, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		m := spacedNameRe.FindString(line)
		if m == "" {
			continue
		}
		collapsed := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, m)
		if len(collapsed) < 3 {
			continue
		}
		name := collapsed
		if len(collapsed) > 6 {
			mid := len(collapsed) / 2
			name = collapsed[:mid] + " " + collapsed[mid:]
		}
		return Extraction{IntentName, fmt.Sprintf("The person's name is %s.", name), true}
	}

	if m := emailPrefixRe.FindStringSubmatch(context); m != nil {
		prefix := strings.NewReplacer(".", " ", "_", " ").Replace(m[1])
		if hasLetter(prefix) {
			return Extraction{
				IntentName,
				fmt.Sprintf("Based on the email address, the person might be %s.", titleWords(prefix)),
				true,
			}
		}
	}

	head := truncateRunes(context, 300)
	for _, match := range fullNameRe.FindAllString(head, -1) {
		if isNameStopword(match) {
			continue
		}
		return Extraction{IntentName, fmt.Sprintf("The person's name appears to be %s.", match), true}
	}

	return Extraction{
		IntentName,
		fmt.Sprintf("The name is not clearly stated in the document. It begins: %s...", truncateRunes(context, 200)),
		false,
	}
}

func (e *Extractor) extractContact(context string) Extraction {
	var parts []string
	if email := emailRe.FindString(context); email != "" {
		parts = append(parts, "Email: "+email)
	}
	if m := phoneRe.FindStringSubmatch(context); m != nil {
		parts = append(parts, fmt.Sprintf("Phone: (%s) %s-%s", m[1], m[2], m[3]))
	}

	if len(parts) > 0 {
		return Extraction{IntentContact, fmt.Sprintf("Contact information: %s.", strings.Join(parts, ", ")), true}
	}
	return Extraction{
		IntentContact,
		fmt.Sprintf("No contact details found. The document contains: %s...", truncateRunes(context, 200)),
		false,
	}
}

// extractSkills matches the configured vocabulary case-insensitively and
// returns hits deduplicated, ordered by first appearance in the text.
func (e *Extractor) extractSkills(context string) Extraction {
	lower := strings.ToLower(context)

	type hit struct {
		skill string
		pos   int
	}
	var hits []hit
	seen := make(map[string]bool)
	for _, skill := range e.skillsVocab {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		if pos := strings.Index(lower, key); pos >= 0 {
			seen[key] = true
			hits = append(hits, hit{skill: skill, pos: pos})
		}
	}

	if len(hits) == 0 {
		return Extraction{
			IntentSkills,
			fmt.Sprintf("No listed skills matched. Relevant text: %s...", truncateRunes(context, 300)),
			false,
		}
	}

	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.skill
	}
	return Extraction{IntentSkills, "Technical skills mentioned: " + strings.Join(names, ", ") + ".", true}
}

func (e *Extractor) extractExperience(context string) Extraction {
	years := yearRe.FindAllString(context, -1)

	lower := strings.ToLower(context)
	var roles []string
	for _, kw := range roleKeywords {
		if strings.Contains(lower, kw) {
			roles = append(roles, kw)
		}
	}

	if len(years) == 0 && len(roles) == 0 {
		return Extraction{
			IntentExperience,
			fmt.Sprintf("Regarding work experience: %s...", truncateRunes(context, 300)),
			false,
		}
	}

	var parts []string
	if len(years) > 0 {
		min, max := years[0], years[0]
		for _, y := range years[1:] {
			if y < min {
				min = y
			}
			if y > max {
				max = y
			}
		}
		parts = append(parts, fmt.Sprintf("Experience spanning years %s-%s", min, max))
	}
	if len(roles) > 0 {
		parts = append(parts, "Roles include: "+strings.Join(roles, ", "))
	}

	return Extraction{
		IntentExperience,
		fmt.Sprintf("Work experience information: %s. Details: %s...", strings.Join(parts, ". "), truncateRunes(context, 200)),
		true,
	}
}

// extractEducation collects the lines mentioning an institution or degree
// keyword.
func (e *Extractor) extractEducation(context string) Extraction {
	var matched []string
	for _, line := range strings.Split(context, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range educationKeywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, trimmed)
				break
			}
		}
	}

	if len(matched) == 0 {
		return Extraction{
			IntentEducation,
			fmt.Sprintf("Regarding education: %s...", truncateRunes(context, 300)),
			false,
		}
	}
	return Extraction{IntentEducation, "Educational background: " + strings.Join(matched, " "), true}
}

// extractGeneral returns the best chunk's text with a lead-in chosen by
// the question word. Always counts as a hit at the general strategy's low
// certainty.
func (e *Extractor) extractGeneral(question, bestChunk string) Extraction {
	q := strings.ToLower(question)
	var answer string
	switch {
	case strings.Contains(q, "what"):
		answer = "According to the document: " + bestChunk
	case strings.Contains(q, "how"):
		answer = "The document explains: " + bestChunk
	case strings.Contains(q, "why"):
		answer = "The document indicates: " + bestChunk
	default:
		answer = "Based on the document: " + bestChunk
	}
	return Extraction{IntentGeneral, answer, true}
}

func isNameStopword(candidate string) bool {
	upper := strings.ToUpper(candidate)
	for _, w := range nameStopwords {
		if strings.Contains(upper, w) {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
