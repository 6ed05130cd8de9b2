package providers

import "context"

// Mock is a Completer which echoes the prompt back, or returns a canned
// response or error. Used in tests across the module.
type Mock struct {
	Response string
	Err      error
}

func (m *Mock) Complete(_ context.Context, prompt string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return prompt, nil
}
