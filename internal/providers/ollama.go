package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/baalimago/chatbox/internal/utils"
	"github.com/ollama/ollama/api"
)

const (
	ollamaDefaultBaseURL = "http://localhost:11434"
	ollamaDefaultModel   = "qwen3:8b"
)

// Ollama completes prompts against a local Ollama server. It never requires
// an API key, the server is assumed to run on localhost unless
// OLLAMA_BASE_URL says otherwise.
type Ollama struct {
	Model   string
	BaseURL string

	client *api.Client
}

// NewOllama creates an Ollama completer. An empty model falls back to
// OLLAMA_DEFAULT_MODEL, then to qwen3:8b.
func NewOllama(model string) (*Ollama, error) {
	if model == "" {
		model = utils.Getenv("OLLAMA_DEFAULT_MODEL", ollamaDefaultModel)
	}
	baseURL := utils.Getenv("OLLAMA_BASE_URL", ollamaDefaultBaseURL)
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ollama base url: %w", err)
	}
	return &Ollama{
		Model:   model,
		BaseURL: baseURL,
		client:  api.NewClient(u, &http.Client{}),
	}, nil
}

func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.GenerateRequest{
		Model:  o.Model,
		Prompt: prompt,
		Stream: &stream,
	}
	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate ollama completion: %w", err)
	}
	return sb.String(), nil
}
