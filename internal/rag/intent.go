package rag

import "strings"

// Intent is the classified category of a question, driving which
// extraction strategy runs over the assembled context.
type Intent string

const (
	IntentName       Intent = "name"
	IntentContact    Intent = "contact"
	IntentSkills     Intent = "skills"
	IntentExperience Intent = "experience"
	IntentEducation  Intent = "education"
	IntentGeneral    Intent = "general"
)

type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is evaluated top to bottom, first match wins. The order is a
// policy decision: name outranks contact outranks skills outranks
// experience outranks education; general is the fallback. Keeping it as an
// explicit table makes ties between keyword sets resolve deterministically.
var intentRules = []intentRule{
	{IntentName, []string{"name", "who"}},
	{IntentContact, []string{"contact", "email", "phone", "address"}},
	{IntentSkills, []string{"skill", "technology", "technical"}},
	{IntentExperience, []string{"experience", "work", "job", "position"}},
	{IntentEducation, []string{"education", "degree", "university", "college"}},
}

// ClassifyIntent picks exactly one intent for a question by substring
// membership over the lower-cased text. Deterministic: identical input
// always yields the same intent.
func ClassifyIntent(question string) Intent {
	q := strings.ToLower(question)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return IntentGeneral
}
