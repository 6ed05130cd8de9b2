package providers

import (
	"context"
	"fmt"
	"strings"
)

// Completer produces a single full completion for an already templated
// prompt. Implementations wrap one LLM provider SDK each.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider selects which LLM backend a completion is routed to.
type Provider string

const (
	// Auto routes to the local Ollama server.
	Auto Provider = "auto"
	// GPT routes to the OpenAI chat completions API.
	GPT Provider = "gpt"
	// Claude routes to the Anthropic messages API.
	Claude Provider = "claude"
)

// Valid lists every routable provider, in presentation order.
func Valid() []Provider {
	return []Provider{Auto, GPT, Claude}
}

// ValidString renders the valid providers as 'auto, gpt, claude'.
func ValidString() string {
	valid := Valid()
	strs := make([]string, 0, len(valid))
	for _, p := range valid {
		strs = append(strs, string(p))
	}
	return strings.Join(strs, ", ")
}

// Parse converts user input into a Provider. Input is trimmed and matched
// case-insensitively.
func Parse(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case Auto:
		return Auto, nil
	case GPT:
		return GPT, nil
	case Claude:
		return Claude, nil
	default:
		return "", fmt.Errorf("unsupported provider: '%v', valid providers are: %v", s, ValidString())
	}
}

// New creates a Completer routed to the given provider. An empty model
// selects the provider's default. Construction validates configuration,
// it does not perform any network calls.
func New(p Provider, model string) (Completer, error) {
	switch p {
	case Auto:
		return NewOllama(model)
	case GPT:
		return NewOpenAI(model)
	case Claude:
		return NewAnthropic(model)
	default:
		return nil, fmt.Errorf("unsupported provider: '%v', valid providers are: %v", p, ValidString())
	}
}
