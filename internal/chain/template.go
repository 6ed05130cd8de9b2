package chain

import "strings"

// DefaultTemplate frames a bare question as a single conversational turn.
// Completion style models respond better when prompted this way.
const DefaultTemplate = "Human: {question}\n\nAssistant:"

const questionPlaceholder = "{question}"

// Template renders a user question into the prompt sent to a provider.
type Template struct {
	raw string
}

// NewTemplate creates a Template from the custom template string, falling
// back to DefaultTemplate on empty input. The custom string should contain
// a {question} placeholder.
func NewTemplate(custom string) Template {
	if custom == "" {
		custom = DefaultTemplate
	}
	return Template{raw: custom}
}

// Fill substitutes the question into the template.
func (t Template) Fill(question string) string {
	return strings.ReplaceAll(t.raw, questionPlaceholder, question)
}
