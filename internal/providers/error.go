package providers

import "fmt"

const (
	ollamaHints = `Troubleshooting:
- Make sure Ollama is running (ollama serve)
- Check if model is available (ollama list)`

	openaiHints = `Troubleshooting:
- Check OpenAI API key
- Verify internet connection
- Check API quotas`

	anthropicHints = `Troubleshooting:
- Check Anthropic API key
- Verify internet connection
- Check API quotas`
)

// Error decorates a provider failure with troubleshooting hints for that
// provider. The hints are part of the error string since they are shown
// to end users as-is, both in the CLIs and in the backend error payloads.
type Error struct {
	Provider Provider
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error with %v: %v\n\n%v", e.Provider, e.Err, hints(e.Provider))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap decorates err with provider specific troubleshooting hints. A nil
// err returns nil.
func Wrap(p Provider, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Provider: p, Err: err}
}

func hints(p Provider) string {
	switch p {
	case Auto:
		return ollamaHints
	case GPT:
		return openaiHints
	case Claude:
		return anthropicHints
	default:
		return ""
	}
}
